package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "gatehouse-test"

func newTestPair(t *testing.T, secret string) (*HS256Signer, *HS256Verifier) {
	t.Helper()

	signer, err := NewSignerHS256(secret, testIssuer)
	require.NoError(t, err)

	verifier, err := NewVerifierHS256(secret, testIssuer)
	require.NoError(t, err)

	return signer, verifier
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, verifier := newTestPair(t, "super-secret")

	claims := NewClaims("user-123", time.Minute, testIssuer, time.Now())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", parsed.Subject)
	require.Equal(t, testIssuer, parsed.Issuer)
	require.NotEmpty(t, parsed.ID, "jti should be populated")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer, _ := newTestPair(t, "secret-a")
	_, otherVerifier := newTestPair(t, "secret-b")

	token, err := signer.Sign(NewClaims("user-123", time.Minute, testIssuer, time.Now()))
	require.NoError(t, err)

	_, err = otherVerifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, verifier := newTestPair(t, "super-secret")

	// Issue a token already past its expiry
	token, err := signer.Sign(NewClaims("user-123", time.Second, testIssuer, time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	_, verifier := newTestPair(t, "super-secret")

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := verifier.Verify(raw)
		require.Error(t, err, "token %q should not verify", raw)
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer, err := NewSignerHS256("super-secret", "someone-else")
	require.NoError(t, err)

	_, verifier := newTestPair(t, "super-secret")

	token, err := signer.Sign(NewClaims("user-123", time.Minute, "someone-else", time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	accessSigner, accessVerifier := newTestPair(t, "access-secret")
	refreshSigner, refreshVerifier := newTestPair(t, "refresh-secret")

	now := time.Now()
	access, err := accessSigner.Sign(NewClaims("user-123", DefaultAccessTokenTTL, testIssuer, now))
	require.NoError(t, err)
	refresh, err := refreshSigner.Sign(NewClaims("user-123", DefaultRefreshTokenTTL, testIssuer, now))
	require.NoError(t, err)

	// Each verifier accepts only its own family of tokens
	_, err = accessVerifier.Verify(refresh)
	require.ErrorIs(t, err, ErrInvalidSig)
	_, err = refreshVerifier.Verify(access)
	require.ErrorIs(t, err, ErrInvalidSig)

	_, err = accessVerifier.Verify(access)
	require.NoError(t, err)
	_, err = refreshVerifier.Verify(refresh)
	require.NoError(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := NewSignerHS256("", testIssuer)
	require.Error(t, err)

	_, err = NewVerifierHS256("", testIssuer)
	require.Error(t, err)
}
