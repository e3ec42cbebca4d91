package structs

import (
	"ileke_server/structs/tables"

	"github.com/google/uuid"
)

type CheckoutInitializeRequest struct {
	Email           string          `json:"email" validate:"required,email"`
	Phone           string          `json:"phone" validate:"required,min=7,max=20"`
	ShippingAddress tables.Address  `json:"shipping_address" validate:"required"`
	BillingAddress  *tables.Address `json:"billing_address,omitempty"`
	CouponCode      string          `json:"coupon_code,omitempty" validate:"omitempty,min=3,max=50"`
	SaveAddress     bool            `json:"save_address,omitempty"`
}

// CheckoutSession is the checkout intent carried across the gateway redirect
// in an AES-GCM encrypted cookie.
type CheckoutSession struct {
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	ShippingAddress tables.Address        `json:"shipping_address"`
	BillingAddress  *tables.Address       `json:"billing_address,omitempty"`
	SaveAddress     bool                  `json:"save_address"`
	UserId          *uuid.UUID            `json:"user_id,omitempty"`
	CartId          uuid.UUID             `json:"cart_id"`
	CouponCode      string                `json:"coupon_code,omitempty"`
	Lines           []CheckoutSessionLine `json:"lines"`
	SubtotalAmount  uint64                `json:"subtotal_amount"`
	DiscountAmount  uint64                `json:"discount_amount"`
	ShippingAmount  uint64                `json:"shipping_amount"`
	TotalAmount     uint64                `json:"total_amount"`
}

// CheckoutSessionLine is a cart line repriced against the live catalog at
// initialize time. Order items snapshot these prices, never the cart's.
type CheckoutSessionLine struct {
	ProductId        uuid.UUID  `json:"product_id"`
	ProductVariantId *uuid.UUID `json:"product_variant_id,omitempty"`
	Quantity         int        `json:"quantity"`
	UnitPrice        uint64     `json:"unit_price"` // kobo
}

// QuoteSession is the equivalent intent cookie for custom-order quote payments.
type QuoteSession struct {
	QuoteId      uuid.UUID `json:"quote_id"`
	RequestId    uuid.UUID `json:"request_id"`
	TokenHash    string    `json:"token_hash"`
	Email        string    `json:"email"`
	CustomerName string    `json:"customer_name"`
	Amount       uint64    `json:"amount"`
	CurrencyCode string    `json:"currency_code"`
}

type CheckoutInitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}
