package structs

type CustomOrderRequestCreate struct {
	CustomerName     string   `json:"customer_name" validate:"required,min=2,max=200"`
	Email            string   `json:"email" validate:"required,email"`
	Phone            string   `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Title            string   `json:"title" validate:"required,min=2,max=200"`
	Description      string   `json:"description" validate:"required,min=10,max=5000"`
	SizeNotes        string   `json:"size_notes,omitempty" validate:"omitempty,max=1000"`
	ColorPreferences string   `json:"color_preferences,omitempty" validate:"omitempty,max=500"`
	BudgetMin        *uint64  `json:"budget_min,omitempty"`
	BudgetMax        *uint64  `json:"budget_max,omitempty"`
	DesiredDate      string   `json:"desired_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReferenceImages  []string `json:"reference_images,omitempty" validate:"omitempty,max=8,dive,url"`
	CustomerNotes    string   `json:"customer_notes,omitempty" validate:"omitempty,max=1000"`
}

type CustomOrderRequestUpdate struct {
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=submitted under_review quoted awaiting_payment paid in_production completed cancelled rejected"`
	AdminNotes string `json:"admin_notes,omitempty" validate:"omitempty,max=2000"`
}

type QuoteIssueRequest struct {
	Amount       uint64            `json:"amount" validate:"required,gt=0"` // kobo
	CurrencyCode string            `json:"currency_code,omitempty" validate:"omitempty,len=3"`
	Note         string            `json:"note,omitempty" validate:"omitempty,max=2000"`
	Breakdown    map[string]uint64 `json:"breakdown,omitempty"`
	ExpiresAt    string            `json:"expires_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type QuotePaymentRequest struct {
	Token string `json:"token" validate:"required,min=16"`
}
