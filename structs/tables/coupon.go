package tables

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	tableName struct{}  `bun:"table:coupons,alias:cu"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Code      string    `bun:"code,notnull,unique" json:"code" validate:"required,min=3,max=50"` // stored uppercase

	DiscountType  DiscountType `bun:"discount_type,notnull" json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue uint64       `bun:"discount_value,notnull" json:"discount_value" validate:"required,gt=0"` // percent points or kobo

	IsActive      bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	RequiresLogin bool       `bun:"requires_login,notnull,default:false" json:"requires_login"`
	StartDate     *time.Time `bun:"start_date,nullzero" json:"start_date,omitempty"`
	ExpiryDate    *time.Time `bun:"expiry_date,nullzero" json:"expiry_date,omitempty"`

	MaxUses        *int    `bun:"max_uses,nullzero" json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	MaxUsesPerUser *int    `bun:"max_uses_per_user,nullzero" json:"max_uses_per_user,omitempty" validate:"omitempty,gt=0"`
	MinOrderValue  *uint64 `bun:"min_order_value,nullzero" json:"min_order_value,omitempty"` // kobo
	UsedCount      int     `bun:"used_count,notnull,default:0" json:"used_count"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CouponUsage records a redemption, keyed by user id for signed-in customers
// or the cart session id for guests.
type CouponUsage struct {
	tableName struct{}   `bun:"table:coupon_usages,alias:cuu"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	CouponId  uuid.UUID  `bun:"coupon_id,notnull,type:uuid" json:"coupon_id"`
	UserId    *uuid.UUID `bun:"user_id,type:uuid,nullzero" json:"user_id,omitempty"`
	SessionId string     `bun:"session_id,nullzero" json:"session_id,omitempty"`
	OrderId   *uuid.UUID `bun:"order_id,type:uuid,nullzero" json:"order_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)
