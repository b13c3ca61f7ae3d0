package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gatehouse-auth/gatehouse/internal/auth/domain"
	"github.com/gatehouse-auth/gatehouse/internal/auth/store"
	"github.com/gatehouse-auth/gatehouse/internal/auth/store/drivers/sqlite"
	"github.com/gatehouse-auth/gatehouse/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "auth.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("create and fetch", func(t *testing.T) {
		u := newTestUser(t, st, "alice")

		byID, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Username, byID.Username)
		require.Equal(t, u.PasswordHash, byID.PasswordHash)
		require.False(t, byID.CreatedAt.IsZero())

		byName, err := st.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, byName.ID)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		newTestUser(t, st, "bob")

		err := st.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Username:     "bob",
			PasswordHash: "hash",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("unknown user maps to ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.Users().GetUserByUsername(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete user", func(t *testing.T) {
		u := newTestUser(t, st, "carol")

		require.NoError(t, st.Users().DeleteUser(ctx, u.ID))

		_, err := st.Users().GetUserByID(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Deleting again reports not found
		require.ErrorIs(t, st.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
	})
}

func TestRefreshTokensRepo(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := newTestUser(t, st, "alice")

	newToken := func(t *testing.T, hash string, expiresAt time.Time) domain.RefreshToken {
		t.Helper()
		rt := domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: hash,
			ExpiresAt: expiresAt,
		}
		require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, rt))
		return rt
	}

	t.Run("create and lookup by hash", func(t *testing.T) {
		rt := newToken(t, "hash-1", time.Now().UTC().Add(time.Hour))

		got, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-1")
		require.NoError(t, err)
		require.Equal(t, rt.ID, got.ID)
		require.Equal(t, u.ID, got.UserID)
	})

	t.Run("delete reports whether a row was removed", func(t *testing.T) {
		newToken(t, "hash-2", time.Now().UTC().Add(time.Hour))

		deleted, err := st.RefreshTokens().DeleteRefreshTokenByHash(ctx, "hash-2")
		require.NoError(t, err)
		require.True(t, deleted)

		// Second delete of the same hash finds nothing
		deleted, err = st.RefreshTokens().DeleteRefreshTokenByHash(ctx, "hash-2")
		require.NoError(t, err)
		require.False(t, deleted)
	})

	t.Run("delete all for user", func(t *testing.T) {
		newToken(t, "hash-3", time.Now().UTC().Add(time.Hour))
		newToken(t, "hash-4", time.Now().UTC().Add(time.Hour))

		require.NoError(t, st.RefreshTokens().DeleteAllUserRefreshTokens(ctx, u.ID))

		_, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-3")
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-4")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired tokens are cleaned up", func(t *testing.T) {
		newToken(t, "hash-expired", time.Now().UTC().Add(-time.Hour))
		newToken(t, "hash-live", time.Now().UTC().Add(time.Hour))

		require.NoError(t, st.RefreshTokens().DeleteExpiredRefreshTokens(ctx))

		_, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-expired")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-live")
		require.NoError(t, err)
	})

	t.Run("deleting a user cascades to their tokens", func(t *testing.T) {
		victim := newTestUser(t, st, "dave")
		rt := domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    victim.ID,
			TokenHash: "hash-cascade",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}
		require.NoError(t, st.RefreshTokens().CreateRefreshToken(ctx, rt))

		require.NoError(t, st.Users().DeleteUser(ctx, victim.ID))

		_, err := st.RefreshTokens().GetRefreshTokenByHash(ctx, "hash-cascade")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := newTestUser(t, st, "alice")

	sentinel := store.ErrNotFound
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: "tx-hash",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "tx-hash")
	require.ErrorIs(t, err, store.ErrNotFound, "insert should have been rolled back")
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := newTestUser(t, st, "alice")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID:        idx.New().String(),
			UserID:    u.ID,
			TokenHash: "tx-hash",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		})
	})
	require.NoError(t, err)

	_, err = st.RefreshTokens().GetRefreshTokenByHash(ctx, "tx-hash")
	require.NoError(t, err)
}
