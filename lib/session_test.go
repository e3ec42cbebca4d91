package lib

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSessionRoundTrip(t *testing.T) {
	userID := uuid.New()

	value, err := CreateUserSession(userID, "ada@example.com")
	require.NoError(t, err)
	require.Contains(t, value, ".")

	session, err := VerifyUserSession(value)
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.Greater(t, session.ExpiresAt, session.IssuedAt)
}

func TestUserSessionRejectsTamperedPayload(t *testing.T) {
	value, err := CreateUserSession(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	parts := strings.SplitN(value, ".", 2)
	require.Len(t, parts, 2)

	// Flip a byte in the payload, keep the original signature.
	payload := []byte(parts[0])
	payload[0] ^= 0x01
	tampered := string(payload) + "." + parts[1]

	_, err = VerifyUserSession(tampered)
	assert.Error(t, err)
}

func TestUserSessionRejectsForgedSignature(t *testing.T) {
	value, err := CreateUserSession(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	parts := strings.SplitN(value, ".", 2)
	forged := parts[0] + "." + signSession(parts[0], "not-the-real-secret")

	_, err = VerifyUserSession(forged)
	assert.Error(t, err)
}

func TestUserSessionRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "no-dot", "a.b.c.d", "!!!.???"} {
		_, err := VerifyUserSession(value)
		assert.Error(t, err, value)
	}
}
