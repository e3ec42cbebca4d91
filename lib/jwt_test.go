package lib

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	adminID := uuid.New()

	token, err := GenerateAccessToken(adminID, "studio@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.Sub)
	assert.Equal(t, "studio@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.Jti)
	assert.Greater(t, claims.Exp, claims.Iat)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := ParseToken(token)
		assert.Error(t, err, token)
	}
}

func TestAccessTokensAreUnique(t *testing.T) {
	id := uuid.New()

	first, err := GenerateAccessToken(id, "studio@example.com", "admin")
	require.NoError(t, err)
	second, err := GenerateAccessToken(id, "studio@example.com", "admin")
	require.NoError(t, err)

	// jti differs per token
	assert.NotEqual(t, first, second)
}
