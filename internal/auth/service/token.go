package service

import (
	"context"
	"errors"
	"time"

	"github.com/gatehouse-auth/gatehouse/internal/auth/domain"
	"github.com/gatehouse-auth/gatehouse/internal/auth/store"
	"github.com/gatehouse-auth/gatehouse/pkg/cryptox"
	"github.com/gatehouse-auth/gatehouse/pkg/idx"
	"github.com/gatehouse-auth/gatehouse/pkg/jwtx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrUnknownRefresh     = errors.New("unknown_refresh_token")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrUserNotFound       = errors.New("user_not_found")
)

// TokenService issues and rotates access/refresh token pairs. Access and
// refresh tokens are signed with independent secrets, so a refresh token
// can never be replayed as an access token or vice versa.
type TokenService struct {
	AccessSigner    jwtx.Signer
	RefreshSigner   jwtx.Signer
	RefreshVerifier jwtx.Verifier
	Store           store.Store
	Issuer          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
}

// IssuePair signs a fresh access/refresh pair for the user and persists the
// refresh token's fingerprint so it can be consumed exactly once later.
func (s *TokenService) IssuePair(ctx context.Context, userID string) (domain.TokenPair, error) {
	now := time.Now()

	access, err := s.AccessSigner.Sign(jwtx.NewClaims(userID, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.RefreshSigner.Sign(jwtx.NewClaims(userID, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Rotate consumes a refresh token and issues a replacement pair. The old
// token is deleted in the same transaction that records the new one, and the
// delete's rows-affected count decides the winner when two rotations race:
// only one caller sees the row removed, the other gets ErrUnknownRefresh.
//
// The store lookup happens before signature verification, matching the
// logout path: a token we never issued (or already consumed) is rejected as
// unknown without touching the verifier.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	fp := cryptox.FingerprintToken(refreshToken)
	if _, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrUnknownRefresh
		}
		return domain.TokenPair{}, err
	}

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Warn("refresh token failed verification", "error", err)
		return domain.TokenPair{}, ErrInvalidRefresh
	}
	userID := claims.Subject

	access, err := s.AccessSigner.Sign(jwtx.NewClaims(userID, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.RefreshSigner.Sign(jwtx.NewClaims(userID, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	newRT := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(s.RefreshTTL),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		deleted, err := tx.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp)
		if err != nil {
			return err
		}
		if !deleted {
			// Lost the race to a concurrent rotation.
			return ErrUnknownRefresh
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, newRT)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Revoke forgets a refresh token so it can never be rotated again. Revoking
// a token that was never issued, or was already consumed, is a no-op.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	fp := cryptox.FingerprintToken(refreshToken)
	_, err := s.Store.RefreshTokens().DeleteRefreshTokenByHash(ctx, fp)
	return err
}
