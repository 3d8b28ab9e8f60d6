package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAuthenticator(t *testing.T) {
	auth := newTestAuthenticator(t)
	ctx := context.Background()

	identity, err := auth.Authenticate(ctx, "user", "user123")
	require.NoError(t, err)
	assert.Equal(t, "user", identity.Username)
	assert.Equal(t, "Usuário", identity.DisplayName)
	assert.Equal(t, testNow, identity.LoginTime)

	_, err = auth.Authenticate(ctx, "user", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "ghost", "user123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaticAuthenticatorDoesNotKeepPlaintext(t *testing.T) {
	auth := newTestAuthenticator(t)

	require.Len(t, auth.users, len(DefaultUsers))
	for _, u := range DefaultUsers {
		hash := string(auth.users[u.Username].passwordHash)
		assert.NotEqual(t, u.Password, hash)
		assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash")
	}
}
