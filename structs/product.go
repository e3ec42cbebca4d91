package structs

// Admin catalog write payloads. Partial updates use pointer fields so absent
// keys and explicit zero values can be told apart.

type ProductUpdateRequest struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Handle         *string   `json:"handle,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price          *uint64   `json:"price,omitempty"`
	CompareAtPrice *uint64   `json:"compare_at_price,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	FeaturedImage  *string   `json:"featured_image,omitempty" validate:"omitempty,url"`
}

type CollectionUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Handle      *string `json:"handle,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ProductVariantsReplaceRequest swaps a product's whole variant set at once;
// the storefront admin edits variants as a grid and saves them together.
type ProductVariantsReplaceRequest struct {
	Variants []ProductVariantInput `json:"variants" validate:"required,min=1,max=50,dive"`
}

type ProductVariantInput struct {
	Title    string `json:"title" validate:"required,min=1,max=100"`
	SKU      string `json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
	Price    uint64 `json:"price" validate:"gte=0"`
	Stock    int    `json:"stock" validate:"gte=0"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// MenuUpsertRequest replaces a navigation menu and its items by handle.
type MenuUpsertRequest struct {
	Handle string          `json:"handle" validate:"required,min=2,max=100"`
	Title  string          `json:"title" validate:"required,min=2,max=100"`
	Items  []MenuItemInput `json:"items" validate:"max=50,dive"`
}

type MenuItemInput struct {
	Title string `json:"title" validate:"required,min=1,max=100"`
	URL   string `json:"url" validate:"required,max=500"`
}
