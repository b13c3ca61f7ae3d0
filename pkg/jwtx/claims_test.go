package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Now()
	claims := NewClaims("user-123", 30*time.Second, "gatehouse", now)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "gatehouse", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "every token gets a jti")
	assert.WithinDuration(t, now, claims.IssuedAt.Time, time.Second)
	assert.WithinDuration(t, now.Add(30*time.Second), claims.ExpiresAt.Time, time.Second)
}

func TestNewJTIIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		jti := NewJTI()
		require.False(t, seen[jti], "jti collision")
		seen[jti] = true
	}
}

func TestValidateExpiry(t *testing.T) {
	t.Run("live token passes", func(t *testing.T) {
		claims := NewClaims("u", time.Hour, "iss", time.Now())
		assert.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token fails", func(t *testing.T) {
		claims := NewClaims("u", time.Minute, "iss", time.Now().Add(-2*time.Minute))
		assert.ErrorIs(t, claims.ValidateExpiry(), ErrExpired)
	})

	t.Run("token from the future fails", func(t *testing.T) {
		claims := NewClaims("u", time.Hour, "iss", time.Now().Add(time.Minute))
		assert.ErrorIs(t, claims.ValidateExpiry(), ErrNotYetValid)
	})
}

func TestValidateIssuer(t *testing.T) {
	claims := NewClaims("u", time.Hour, "gatehouse", time.Now())

	assert.NoError(t, claims.ValidateIssuer("gatehouse"))
	assert.NoError(t, claims.ValidateIssuer(""), "empty expectation enforces nothing")
	assert.ErrorIs(t, claims.ValidateIssuer("someone-else"), ErrIssuer)
}
