package tables

import (
	"time"

	"github.com/google/uuid"
)

// CustomOrderRequest is a customer-submitted bespoke design brief awaiting a
// priced quote.
type CustomOrderRequest struct {
	tableName     struct{}   `bun:"table:custom_order_requests,alias:cor"`
	Id            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	RequestNumber string     `bun:"request_number,notnull,unique" json:"request_number"`
	UserId        *uuid.UUID `bun:"user_id,type:uuid,nullzero" json:"user_id,omitempty"`

	CustomerName string `bun:"customer_name,notnull" json:"customer_name" validate:"required,min=2,max=200"`
	Email        string `bun:"email,notnull" json:"email" validate:"required,email"`
	Phone        string `bun:"phone,nullzero" json:"phone,omitempty" validate:"omitempty,min=7,max=20"`

	Title            string     `bun:"title,notnull" json:"title" validate:"required,min=2,max=200"`
	Description      string     `bun:"description,notnull" json:"description" validate:"required,min=10,max=5000"`
	SizeNotes        string     `bun:"size_notes,nullzero" json:"size_notes,omitempty" validate:"omitempty,max=1000"`
	ColorPreferences string     `bun:"color_preferences,nullzero" json:"color_preferences,omitempty" validate:"omitempty,max=500"`
	BudgetMin        *uint64    `bun:"budget_min,nullzero" json:"budget_min,omitempty"` // kobo
	BudgetMax        *uint64    `bun:"budget_max,nullzero" json:"budget_max,omitempty"`
	DesiredDate      *time.Time `bun:"desired_date,nullzero" json:"desired_date,omitempty"`
	ReferenceImages  []string   `bun:"reference_images,array" json:"reference_images,omitempty" validate:"omitempty,max=8,dive,url"`

	Status        CustomOrderRequestStatus `bun:"status,notnull,default:'submitted'" json:"status"`
	AdminNotes    string                   `bun:"admin_notes,nullzero" json:"admin_notes,omitempty"`
	CustomerNotes string                   `bun:"customer_notes,nullzero" json:"customer_notes,omitempty" validate:"omitempty,max=1000"`

	// Denormalized view of the latest quote, kept on the request for cheap listing
	QuotedAmount   *uint64    `bun:"quoted_amount,nullzero" json:"quoted_amount,omitempty"`
	CurrencyCode   string     `bun:"currency_code,notnull,default:'NGN'" json:"currency_code"`
	QuoteExpiresAt *time.Time `bun:"quote_expires_at,nullzero" json:"quote_expires_at,omitempty"`

	PaidAt           *time.Time `bun:"paid_at,nullzero" json:"paid_at,omitempty"`
	ConvertedOrderId *uuid.UUID `bun:"converted_order_id,type:uuid,nullzero" json:"converted_order_id,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CustomOrderQuote is a versioned monetary offer against a request with its
// own accept/expire lifecycle.
type CustomOrderQuote struct {
	tableName struct{}  `bun:"table:custom_order_quotes,alias:coq"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	RequestId uuid.UUID `bun:"request_id,notnull,type:uuid" json:"request_id"`
	Version   int       `bun:"version,notnull" json:"version"`

	Amount       uint64            `bun:"amount,notnull" json:"amount" validate:"required,gt=0"` // kobo
	CurrencyCode string            `bun:"currency_code,notnull,default:'NGN'" json:"currency_code"`
	Breakdown    map[string]uint64 `bun:"breakdown,type:jsonb,nullzero" json:"breakdown,omitempty"`
	Note         string            `bun:"note,nullzero" json:"note,omitempty" validate:"omitempty,max=2000"`

	Status    CustomOrderQuoteStatus `bun:"status,notnull,default:'sent'" json:"status"`
	ExpiresAt *time.Time             `bun:"expires_at,nullzero" json:"expires_at,omitempty"`

	ReminderCount             int        `bun:"reminder_count,notnull,default:0" json:"reminder_count"`
	ExpiredNotificationSentAt *time.Time `bun:"expired_notification_sent_at,nullzero" json:"expired_notification_sent_at,omitempty"`

	CreatedBy string    `bun:"created_by,nullzero" json:"created_by,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// CustomOrderQuoteToken lets a customer view and pay a quote without logging
// in. Only the sha256 hash of the emailed token is stored.
type CustomOrderQuoteToken struct {
	tableName struct{}   `bun:"table:custom_order_quote_tokens,alias:coqt"`
	Id        uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	QuoteId   uuid.UUID  `bun:"quote_id,notnull,type:uuid" json:"quote_id"`
	TokenHash string     `bun:"token_hash,notnull,unique" json:"-"`
	ExpiresAt time.Time  `bun:"expires_at,notnull" json:"expires_at"`
	UsedAt    *time.Time `bun:"used_at,nullzero" json:"used_at,omitempty"`
	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type CustomOrderRequestStatus string

const (
	CustomRequestStatusSubmitted       CustomOrderRequestStatus = "submitted"
	CustomRequestStatusUnderReview     CustomOrderRequestStatus = "under_review"
	CustomRequestStatusQuoted          CustomOrderRequestStatus = "quoted"
	CustomRequestStatusAwaitingPayment CustomOrderRequestStatus = "awaiting_payment"
	CustomRequestStatusPaid            CustomOrderRequestStatus = "paid"
	CustomRequestStatusInProduction    CustomOrderRequestStatus = "in_production"
	CustomRequestStatusCompleted       CustomOrderRequestStatus = "completed"
	CustomRequestStatusCancelled       CustomOrderRequestStatus = "cancelled"
	CustomRequestStatusRejected        CustomOrderRequestStatus = "rejected"
)

type CustomOrderQuoteStatus string

const (
	QuoteStatusSent     CustomOrderQuoteStatus = "sent"
	QuoteStatusAccepted CustomOrderQuoteStatus = "accepted"
	QuoteStatusRejected CustomOrderQuoteStatus = "rejected"
	QuoteStatusExpired  CustomOrderQuoteStatus = "expired"
	QuoteStatusPaid     CustomOrderQuoteStatus = "paid"
)
