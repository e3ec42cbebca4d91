package structs

import (
	"github.com/google/uuid"
)

// AuthClaims are the parsed contents of an admin access token.
type AuthClaims struct {
	Sub   uuid.UUID `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   int64     `json:"iat"`
	Exp   int64     `json:"exp"`
	Jti   string    `json:"jti"`
}

// UserSession is the payload of the HMAC-signed customer session cookie.
type UserSession struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
}

type MagicLinkVerifyRequest struct {
	Token string `json:"token" validate:"required,min=16"`
}
