package lib

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ileke_server/config"
	"ileke_server/structs"
)

// GenerateAccessToken signs a JWT for an admin session.
func GenerateAccessToken(adminID uuid.UUID, email, role string) (string, error) {
	cfg := config.GetConfig()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":   adminID.String(),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(cfg.Auth.AccessTokenExpiry).Unix(),
		"jti":   uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Auth.AccessTokenSecret))
}

// ParseToken validates a signed JWT and returns its claims.
func ParseToken(tokenString string) (*structs.AuthClaims, error) {
	cfg := config.GetConfig()

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)

	adminID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	out := &structs.AuthClaims{
		Sub:   adminID,
		Email: email,
		Role:  role,
		Jti:   jti,
	}
	if iat, ok := claims["iat"].(float64); ok {
		out.Iat = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.Exp = int64(exp)
	}

	return out, nil
}

// ExtractClaims reads the admin session cookie off a request and parses it.
func ExtractClaims(r *http.Request) (*structs.AuthClaims, error) {
	tokenString, err := GetCookieValue(AccessCookieName, r)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return ParseToken(tokenString)
}
