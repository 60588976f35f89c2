package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "studio-booking", time.Hour)

	token, err := tm.GenerateToken("google-123", "jane@example.com", "Jane Doe", "https://pics.example/jane.png")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "google-123", claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "studio-booking", claims.Issuer)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", "studio-booking", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	tm.now = func() time.Time { return issued }

	token, err := tm.GenerateToken("google-123", "jane@example.com", "Jane", "")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecretOrIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "studio-booking", time.Hour).GenerateToken("u", "e", "n", "")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "studio-booking", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", "someone-else", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, TimingSafeCompare("state-abc", "state-abc"))
	assert.False(t, TimingSafeCompare("state-abc", "state-abd"))
	assert.False(t, TimingSafeCompare("", "state"))
}
