package authsdk

// CredentialsRequest is the body for both POST /api/register and
// POST /api/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /api/refresh-token and POST /api/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is returned by the login and refresh endpoints.
type TokenPair struct {
	// AccessToken is a short-lived JWT attached as a bearer token to
	// protected requests.
	AccessToken string `json:"accessToken"`

	// RefreshToken is a long-lived, single-use JWT exchanged at the
	// refresh endpoint for a new pair.
	RefreshToken string `json:"refreshToken"`
}

// MessageResponse is the generic {message} envelope used by endpoints that
// have nothing more to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is returned from GET /api/profile.
type ProfileResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// HealthResponse is the body for the /livez and /readyz endpoints. Checks is
// only present on /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}
