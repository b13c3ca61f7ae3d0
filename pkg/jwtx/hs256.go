package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Signer signs JWTs with an HMAC-SHA256 shared secret. The service runs
// two of these with distinct secrets: one for access tokens and one for
// refresh tokens, so a leaked access secret can never mint refresh tokens.
type HS256Signer struct {
	secret []byte
	issuer string
}

// NewSignerHS256 creates an HS256 signer from a shared secret.
func NewSignerHS256(secret, issuer string) (*HS256Signer, error) {
	if secret == "" {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256Signer{secret: []byte(secret), issuer: issuer}, nil
}

func (s *HS256Signer) Alg() string    { return jwt.SigningMethodHS256.Alg() }
func (s *HS256Signer) Issuer() string { return s.issuer }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates JWTs signed using HS256 with a matching secret.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewVerifierHS256 creates a verifier for tokens signed with the given secret.
func NewVerifierHS256(secret, issuer string) (*HS256Verifier, error) {
	if secret == "" {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256Verifier{secret: []byte(secret), issuer: issuer}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		// Map the library's errors onto our sentinels so callers can
		// use errors.Is without importing golang-jwt.
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
