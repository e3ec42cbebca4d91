package structs

type OrderTrackResponse struct {
	OrderNumber             string           `json:"order_number"`
	Status                  string           `json:"status"`
	DeliveryStatus          string           `json:"delivery_status"`
	DeliveryStatusDetail    string           `json:"delivery_status_detail"`
	DeliveryProgressPercent int              `json:"delivery_progress_percent"`
	EstimatedArrival        *string          `json:"estimated_arrival,omitempty"`
	TotalAmount             uint64           `json:"total_amount"`
	CurrencyCode            string           `json:"currency_code"`
	Items                   []OrderTrackItem `json:"items"`
	CreatedAt               string           `json:"created_at"`
}

type OrderTrackItem struct {
	ProductTitle string `json:"product_title"`
	VariantTitle string `json:"variant_title,omitempty"`
	Quantity     int    `json:"quantity"`
	LineTotal    uint64 `json:"line_total"`
}

type OrderUpdateRequest struct {
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed cancelled"`
	DeliveryStatus string `json:"delivery_status,omitempty" validate:"omitempty,oneof=production sorting dispatch paused completed cancelled"`
	TrackingNumber string `json:"tracking_number,omitempty" validate:"omitempty,max=100"`
	Notes          string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type OrderStats struct {
	TotalOrders    int            `json:"total_orders"`
	CountsByStatus map[string]int `json:"counts_by_status"`
	RevenueKobo    uint64         `json:"revenue_kobo"`
	CustomOrders   int            `json:"custom_orders"`
}

type CartLineRequest struct {
	ProductId        string `json:"product_id" validate:"required,uuid4"`
	ProductVariantId string `json:"product_variant_id,omitempty" validate:"omitempty,uuid4"`
	Quantity         int    `json:"quantity" validate:"required,min=1,max=20"`
}

type CartLineUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,min=0,max=20"` // 0 removes the line
}

type ReviewCreateRequest struct {
	ProductId  string `json:"product_id" validate:"required,uuid4"`
	AuthorName string `json:"author_name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Body       string `json:"body" validate:"required,min=5,max=2000"`
}
