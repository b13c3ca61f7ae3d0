package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gatehouse-auth/gatehouse/pkg/jwtx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

// AuthnMiddleware guards protected routes with a bearer access token.
//
// The two failure modes are deliberately distinct: an absent or non-Bearer
// Authorization header is 401 (the caller never authenticated), while a
// present-but-unverifiable token is 403 (the caller tried and failed).
// Clients rely on this split to decide whether a silent refresh is worth
// attempting.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteMessage(w, http.StatusUnauthorized, "Access token required")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				WriteMessage(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			// Inject into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
