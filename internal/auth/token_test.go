package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/places-service/internal/domain"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	tm := newTestManager()

	for _, kind := range []TokenKind{TokenKindAccess, TokenKindRefresh} {
		token, expiresAt, err := tm.Issue("alice@example.com", domain.RoleAdmin, kind)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := tm.Verify(token, kind)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "alice@example.com", claims.Subject)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		assert.Equal(t, kind, claims.Kind)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
	}
}

func TestTokenKindIsolation(t *testing.T) {
	t.Parallel()
	tm := newTestManager()

	access, _, err := tm.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)
	refresh, _, err := tm.Issue("alice@example.com", domain.RoleUser, TokenKindRefresh)
	require.NoError(t, err)

	_, err = tm.Verify(access, TokenKindRefresh)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)

	_, err = tm.Verify(refresh, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenKindMismatch)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()
	tm := NewTokenManager("test-secret", time.Millisecond, 2*time.Millisecond)

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = tm.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenTamperRejected(t *testing.T) {
	t.Parallel()
	tm := newTestManager()

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	// flip one byte in the middle of the payload segment
	raw := []byte(token)
	idx := len(raw) / 2
	if raw[idx] == '.' {
		idx++
	}
	raw[idx] ^= 0x02
	tampered := string(raw)
	require.NotEqual(t, token, tampered)

	claims, err := tm.Verify(tampered, TokenKindAccess)
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()
	tm := newTestManager()
	other := NewTokenManager("another-secret", 15*time.Minute, 24*time.Hour)

	token, _, err := tm.Issue("alice@example.com", domain.RoleUser, TokenKindAccess)
	require.NoError(t, err)

	_, err = other.Verify(token, TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenGarbageInput(t *testing.T) {
	t.Parallel()
	tm := newTestManager()

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := tm.Verify(input, TokenKindAccess)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}
