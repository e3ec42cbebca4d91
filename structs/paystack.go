package structs

import "encoding/json"

// Paystack wire types. Amounts are kobo.

type PaystackInitializeRequest struct {
	Email       string           `json:"email"`
	Amount      uint64           `json:"amount"`
	Currency    string           `json:"currency"`
	CallbackURL string           `json:"callback_url"`
	Metadata    PaystackMetadata `json:"metadata"`
}

// PaystackMetadata rides along the transaction and comes back on verify and
// webhook payloads.
type PaystackMetadata struct {
	CustomerName        string `json:"customer_name,omitempty"`
	Phone               string `json:"phone,omitempty"`
	CartId              string `json:"cart_id,omitempty"`
	CouponCode          string `json:"coupon_code,omitempty"`
	DiscountAmount      uint64 `json:"discount_amount,omitempty"`
	CustomQuoteId       string `json:"custom_quote_id,omitempty"`
	CustomRequestId     string `json:"custom_request_id,omitempty"`
	CustomRequestNumber string `json:"custom_request_number,omitempty"`
}

type PaystackInitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type PaystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string           `json:"status"` // "success" on settled charges
		Reference string           `json:"reference"`
		Amount    uint64           `json:"amount"`
		Currency  string           `json:"currency"`
		PaidAt    string           `json:"paid_at"`
		Metadata  PaystackMetadata `json:"metadata"`
	} `json:"data"`
}

type PaystackWebhookEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type PaystackChargeData struct {
	Reference string           `json:"reference"`
	Status    string           `json:"status"`
	Amount    uint64           `json:"amount"`
	Currency  string           `json:"currency"`
	Metadata  PaystackMetadata `json:"metadata"`
}
