package structs

import "ileke_server/structs/tables"

type CouponValidateRequest struct {
	Code      string `json:"code" validate:"required,min=3,max=50"`
	CartTotal uint64 `json:"cart_total" validate:"required,gt=0"` // kobo
}

type CouponValidateResponse struct {
	Code           string              `json:"code"`
	DiscountType   tables.DiscountType `json:"discount_type"`
	DiscountAmount uint64              `json:"discount_amount"` // kobo
}

type CouponUpsertRequest struct {
	Code           string              `json:"code" validate:"required,min=3,max=50"`
	DiscountType   tables.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  uint64              `json:"discount_value" validate:"required,gt=0"`
	IsActive       *bool               `json:"is_active,omitempty"`
	RequiresLogin  bool                `json:"requires_login,omitempty"`
	StartDate      string              `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ExpiryDate     string              `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	MaxUses        *int                `json:"max_uses,omitempty" validate:"omitempty,gt=0"`
	MaxUsesPerUser *int                `json:"max_uses_per_user,omitempty" validate:"omitempty,gt=0"`
	MinOrderValue  *uint64             `json:"min_order_value,omitempty"`
}
