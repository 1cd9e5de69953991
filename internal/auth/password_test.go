package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/bucketlist/internal/models"
	"github.com/mmynk/bucketlist/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) (*PasswordAuthenticator, *sqlite.SQLiteStore) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewPasswordAuthenticator(store, NewTokenManager(testSecret, time.Hour)), store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAuthenticator(t)

	t.Run("creates lowercased user", func(t *testing.T) {
		user, err := a.Register(ctx, "Clement", "clement123")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "clement", user.Username)

		stored, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.VerifyPassword("clement123"))
	})

	t.Run("duplicate username in any case", func(t *testing.T) {
		_, err := a.Register(ctx, "CLEMENT", "another123")
		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "imani", "123")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := a.Register(ctx, "", "imani123")
		assert.ErrorIs(t, err, models.ErrUsernameRequired)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAuthenticator(t)

	registered, err := a.Register(ctx, "imani", "imani123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid", username: "imani", password: "imani123"},
		{name: "username case ignored", username: "Imani", password: "imani123"},
		{name: "wrong password", username: "imani", password: "wrong123", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "nobody", password: "imani123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.ID, user.ID)
		})
	}
}

func TestResolveToken(t *testing.T) {
	ctx := context.Background()
	a, store := newTestAuthenticator(t)

	user, err := a.Register(ctx, "clement", "clement123")
	require.NoError(t, err)

	t.Run("valid token resolves user", func(t *testing.T) {
		token, err := a.IssueToken(user)
		require.NoError(t, err)

		got, err := a.ResolveToken(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("invalid token resolves nothing", func(t *testing.T) {
		got, err := a.ResolveToken(ctx, "garbage")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expired token resolves nothing", func(t *testing.T) {
		token, err := a.tokens.GenerateWithExpiration(user.ID, 500*time.Millisecond)
		require.NoError(t, err)
		time.Sleep(2 * time.Second)

		got, err := a.ResolveToken(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("token of deleted user resolves nothing", func(t *testing.T) {
		token, err := a.IssueToken(user)
		require.NoError(t, err)

		ok, err := store.DeleteUser(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := a.ResolveToken(ctx, token)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
