package tables

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	tableName   struct{}   `bun:"table:orders,alias:o"`
	Id          uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	OrderNumber string     `bun:"order_number,notnull,unique" json:"order_number" validate:"omitempty,min=8,max=50"`
	UserId      *uuid.UUID `bun:"user_id,type:uuid,nullzero" json:"user_id,omitempty"` // nil for guest checkout

	// Customer contact (AES-GCM encrypted at rest)
	CustomerName string `bun:"customer_name,notnull" json:"customer_name" validate:"required,min=2,max=200"`
	Email        string `bun:"email,notnull" json:"email" validate:"required"`
	Phone        string `bun:"phone" json:"phone,omitempty"`

	// Addresses as structured JSON snapshots
	ShippingAddress Address  `bun:"shipping_address,type:jsonb" json:"shipping_address"`
	BillingAddress  *Address `bun:"billing_address,type:jsonb,nullzero" json:"billing_address,omitempty"`

	// Monetary amounts in kobo
	SubtotalAmount uint64 `bun:"subtotal_amount,notnull" json:"subtotal_amount"`
	DiscountAmount uint64 `bun:"discount_amount,notnull,default:0" json:"discount_amount"`
	ShippingAmount uint64 `bun:"shipping_amount,notnull,default:0" json:"shipping_amount"`
	TotalAmount    uint64 `bun:"total_amount,notnull" json:"total_amount"`
	CurrencyCode   string `bun:"currency_code,notnull,default:'NGN'" json:"currency_code"`
	CouponCode     string `bun:"coupon_code,nullzero" json:"coupon_code,omitempty"`

	// Gateway reference; unique so a replayed verification can never create a second order
	PaymentReference string `bun:"payment_reference,unique,nullzero" json:"payment_reference,omitempty"`

	Status           OrderStatus    `bun:"status,notnull,default:'pending'" json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	DeliveryStatus   DeliveryStatus `bun:"delivery_status,notnull,default:'production'" json:"delivery_status" validate:"omitempty,oneof=production sorting dispatch paused completed cancelled"`
	EstimatedArrival *time.Time     `bun:"estimated_arrival,nullzero" json:"estimated_arrival,omitempty"`
	TrackingNumber   string         `bun:"tracking_number,nullzero" json:"tracking_number,omitempty"`
	Notes            string         `bun:"notes,nullzero" json:"notes,omitempty"`

	OrderType            OrderType  `bun:"order_type,notnull,default:'standard'" json:"order_type"`
	CustomOrderRequestId *uuid.UUID `bun:"custom_order_request_id,type:uuid,nullzero" json:"custom_order_request_id,omitempty"`

	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

// OrderItem snapshots product data at purchase time so historical orders
// stay stable when the catalog changes.
type OrderItem struct {
	tableName        struct{}   `bun:"table:order_items,alias:oi"`
	Id               uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId          uuid.UUID  `bun:"order_id,notnull,type:uuid" json:"order_id" validate:"required,uuid4"`
	ProductId        uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	ProductVariantId *uuid.UUID `bun:"product_variant_id,type:uuid,nullzero" json:"product_variant_id,omitempty"`

	ProductTitle string `bun:"product_title,notnull" json:"product_title" validate:"required,min=2,max=200"`
	VariantTitle string `bun:"variant_title,nullzero" json:"variant_title,omitempty"`
	Quantity     int    `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`
	UnitPrice    uint64 `bun:"unit_price,notnull" json:"unit_price"`
	LineTotal    uint64 `bun:"line_total,notnull" json:"line_total"`
	CurrencyCode string `bun:"currency_code,notnull,default:'NGN'" json:"currency_code"`
	ProductImage string `bun:"product_image,nullzero" json:"product_image,omitempty"`
}

// Address is stored as a jsonb snapshot on orders and as saved defaults on users.
type Address struct {
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	Line1      string `json:"line1" validate:"required,min=2,max=200"`
	City       string `json:"city" validate:"required,min=1,max=100"`
	State      string `json:"state" validate:"required,min=2,max=100"`
	PostalCode string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
	Country    string `json:"country" validate:"required,len=2"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// DeliveryStatus is the fulfillment-stage label, tracked separately from the
// order status and used to estimate arrival dates.
type DeliveryStatus string

const (
	DeliveryStatusProduction DeliveryStatus = "production"
	DeliveryStatusSorting    DeliveryStatus = "sorting"
	DeliveryStatusDispatch   DeliveryStatus = "dispatch"
	DeliveryStatusPaused     DeliveryStatus = "paused"
	DeliveryStatusCompleted  DeliveryStatus = "completed"
	DeliveryStatusCancelled  DeliveryStatus = "cancelled"
)

type OrderType string

const (
	OrderTypeStandard OrderType = "standard"
	OrderTypeCustom   OrderType = "custom"
)
