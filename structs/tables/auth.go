package tables

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront customer. Customers never have passwords; they sign in
// with single-use magic links.
type User struct {
	tableName struct{}  `bun:"table:users,alias:u"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email     string    `bun:"email,notnull,unique" json:"email" validate:"required,email"`
	Name      string    `bun:"name,nullzero" json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Phone     string    `bun:"phone,nullzero" json:"phone,omitempty"`

	ShippingAddress *Address `bun:"shipping_address,type:jsonb,nullzero" json:"shipping_address,omitempty"`
	BillingAddress  *Address `bun:"billing_address,type:jsonb,nullzero" json:"billing_address,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Admin is a back-office account with an argon2id password hash.
type Admin struct {
	tableName    struct{}  `bun:"table:admins,alias:a"`
	Id           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email        string    `bun:"email,notnull,unique" json:"email" validate:"required,email"`
	Name         string    `bun:"name,nullzero" json:"name,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'admin'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// MagicLinkToken holds the sha256 hash of an emailed login token.
type MagicLinkToken struct {
	tableName struct{}   `bun:"table:magic_link_tokens,alias:mlt"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email     string     `bun:"email,notnull" json:"email"`
	TokenHash string     `bun:"token_hash,notnull,unique" json:"-"`
	ExpiresAt time.Time  `bun:"expires_at,notnull" json:"expires_at"`
	UsedAt    *time.Time `bun:"used_at,nullzero" json:"used_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
