package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 15*time.Minute)

	token, exp, err := m.GenerateAccessToken("user-1", "admin")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)

	token, _, err := m.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", 15*time.Minute)
	other := NewJWTManager("different", 15*time.Minute)

	token, _, err := m.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	m := NewJWTManager("secret", 15*time.Minute)
	_, err := m.ParseAccessToken("definitely.not.ajwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
