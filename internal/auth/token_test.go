package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	token, err := tm.Issue("user-1", "user", "La Taona")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "La Taona", claims.Neighborhood)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	token, err := tm.IssueWithTTL("user-1", "user", "", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Tampered(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	token, err := tm.Issue("user-1", "user", "")
	require.NoError(t, err)

	// flip one byte in the payload section
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'a' {
		raw[mid] = 'b'
	} else {
		raw[mid] = 'a'
	}

	_, err = tm.Verify(string(raw))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)
	other := NewTokenManager("a-different-secret", time.Hour)

	token, err := tm.Issue("user-1", "user", "")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("test-signing-secret", time.Hour)

	_, err := tm.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
