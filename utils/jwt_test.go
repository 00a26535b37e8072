package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "user-123", "admin", AccessTokenTTL)
	require.NoError(t, err)

	claims, err := VerifyToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "user-123", "user", AccessTokenTTL)
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", "user-123", "user", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
