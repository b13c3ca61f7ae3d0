// Package authsdk is the Go client for the gatehouse authentication
// service.
//
// Client covers the unauthenticated endpoints (register, login, refresh,
// logout). Session layers a TokenStore on top and, for protected endpoints,
// transparently recovers from access token expiry: a 401/403 response
// triggers one silent refresh and one replay of the original request.
//
//	client := authsdk.NewClient("http://localhost:3000")
//	session := authsdk.NewSession(client, &authsdk.MemoryTokenStore{})
//
//	if err := session.Login(ctx, "alice", "s3cret"); err != nil {
//		return err
//	}
//	profile, err := session.Profile(ctx) // refreshes behind the scenes if needed
package authsdk
