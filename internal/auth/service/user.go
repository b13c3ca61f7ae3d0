package service

import (
	"context"
	"errors"

	"github.com/gatehouse-auth/gatehouse/internal/auth/domain"
	"github.com/gatehouse-auth/gatehouse/internal/auth/store"
	"github.com/gatehouse-auth/gatehouse/pkg/cryptox"
	"github.com/gatehouse-auth/gatehouse/pkg/idx"
	"github.com/gatehouse-auth/gatehouse/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// Register creates a user with an argon2id password hash. Usernames are
// unique; a collision surfaces as ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials so callers cannot probe for
// which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("password verification failed", "username", username)
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// DeleteAccount removes the user and every refresh token they hold, in one
// transaction so a half-deleted account can't keep refreshing.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().DeleteAllUserRefreshTokens(ctx, userID); err != nil {
			return err
		}
		if err := tx.Users().DeleteUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
}
