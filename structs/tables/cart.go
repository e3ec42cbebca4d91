package tables

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	tableName struct{}   `bun:"table:carts,alias:ct"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Token     string     `bun:"token,notnull,unique" json:"-"` // opaque cookie value
	UserId    *uuid.UUID `bun:"user_id,type:uuid,nullzero" json:"user_id,omitempty"`

	Lines []*CartLine `bun:"rel:has-many,join:id=cart_id" json:"lines,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type CartLine struct {
	tableName        struct{}   `bun:"table:cart_lines,alias:cl"`
	Id               uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	CartId           uuid.UUID  `bun:"cart_id,notnull,type:uuid" json:"cart_id"`
	ProductId        uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	ProductVariantId *uuid.UUID `bun:"product_variant_id,type:uuid,nullzero" json:"product_variant_id,omitempty"`
	Quantity         int        `bun:"quantity,notnull" json:"quantity" validate:"required,min=1,max=20"`

	// Price snapshot when the line was added; re-read at checkout
	UnitPrice uint64 `bun:"unit_price,notnull" json:"unit_price"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
