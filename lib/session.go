package lib

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"ileke_server/config"
	"ileke_server/structs"
)

// CreateUserSession signs a customer session value for the user cookie.
// Format: base64url(payload) "." base64url(hmac-sha256(payload)).
func CreateUserSession(userID uuid.UUID, email string) (string, error) {
	cfg := config.GetConfig()

	session := structs.UserSession{
		UserID:    userID,
		Email:     email,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(cfg.Auth.SessionExpiry).Unix(),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	sig := signSession(encoded, cfg.Auth.SessionSecret)

	return encoded + "." + sig, nil
}

// VerifyUserSession validates a signed session value and returns its payload.
func VerifyUserSession(value string) (*structs.UserSession, error) {
	cfg := config.GetConfig()

	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidToken
	}

	expected := signSession(parts[0], cfg.Auth.SessionSecret)
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var session structs.UserSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().Unix() > session.ExpiresAt {
		return nil, ErrExpiredToken
	}

	return &session, nil
}

func signSession(encodedPayload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
