package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaylab_backend/internal/config"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long enough password"))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken()
	b := GenerateRandomToken()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := GenerateToken("user-1", "admin")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60

	token, err := GenerateToken("user-1", "free")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}
