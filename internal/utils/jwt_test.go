package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeserve/backend/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:         7,
		Username:   "handyman",
		IsProvider: true,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testUser(), "test-secret-key", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret-key")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "handyman", claims.Username)
	assert.True(t, claims.IsProvider)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), "test-secret-key", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(testUser(), "test-secret-key", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret-key")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret-key")
	assert.Error(t, err)
}
