package domain

import "time"

// TokenPair is what the login and refresh endpoints return: a short-lived
// access token and a longer-lived refresh token, both JWTs signed with
// distinct secrets.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken models the stored refresh token record in the DB. Only the
// fingerprint of the token is persisted; possession of the database alone is
// not enough to mint new access tokens.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}
