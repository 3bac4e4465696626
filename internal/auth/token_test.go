package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), time.Hour)

	tok, err := m.Issue("user-123")
	require.NoError(t, err)

	got, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-123", got)
}

func TestTokenExpired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("secret"), -1*time.Second)

	tok, err := m.Issue("u1")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager([]byte("right-secret"), time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenManager([]byte("wrong-secret"), time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenMissing(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("k"), time.Hour).Verify("")
	require.ErrorIs(t, err, ErrTokenMissing)
}

func TestTokenMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager([]byte("k"), time.Hour).Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
