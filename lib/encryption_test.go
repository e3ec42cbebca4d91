package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, plaintext := range []string{
		"Adaeze Okonkwo",
		"+2348012345678",
		"a much longer piece of text with unicode: Ilékè ₦",
	} {
		sealed, err := Encrypt(plaintext, testKey)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, sealed)

		opened, err := Decrypt(sealed, testKey)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestEncryptEmptyStringPassesThrough(t *testing.T) {
	sealed, err := Encrypt("", testKey)
	require.NoError(t, err)
	assert.Empty(t, sealed)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	first, err := Encrypt("same plaintext", testKey)
	require.NoError(t, err)
	second, err := Encrypt("same plaintext", testKey)
	require.NoError(t, err)

	// Fresh nonce every call
	assert.NotEqual(t, first, second)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	sealed, err := Encrypt("secret", testKey)
	require.NoError(t, err)

	otherKey := strings.Repeat("x", 32)
	_, err = Decrypt(sealed, otherKey)
	assert.Error(t, err)
}

func TestEncryptRejectsShortKey(t *testing.T) {
	_, err := Encrypt("secret", "short")
	assert.Error(t, err)

	_, err = Decrypt("whatever", "short")
	assert.Error(t, err)
}

func TestDecryptRejectsCorruptCiphertext(t *testing.T) {
	_, err := Decrypt("not base64!!!", testKey)
	assert.Error(t, err)

	_, err = Decrypt("c2hvcnQ=", testKey) // valid base64, too short for a nonce
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken("some-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
}

func TestGenerateRandomTokenIsURLSafe(t *testing.T) {
	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, "=")

	other, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
