package tables

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	tableName   struct{}  `bun:"table:products,alias:p"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	Title       string    `bun:"title,notnull" json:"title" validate:"required,min=2,max=200"`
	Handle      string    `bun:"handle,notnull,unique" json:"handle" validate:"required,min=2,max=200"`
	Description string    `bun:"description" json:"description,omitempty" validate:"omitempty,max=5000"`

	// Prices in kobo
	Price          uint64  `bun:"price,notnull" json:"price" validate:"required,gte=0"`
	CompareAtPrice *uint64 `bun:"compare_at_price,nullzero" json:"compare_at_price,omitempty"`
	CurrencyCode   string  `bun:"currency_code,notnull,default:'NGN'" json:"currency_code"`

	Tags          []string `bun:"tags,array" json:"tags,omitempty"`
	IsActive      bool     `bun:"is_active,notnull,default:true" json:"is_active"`
	FeaturedImage string   `bun:"featured_image,nullzero" json:"featured_image,omitempty" validate:"omitempty,url"`

	Variants []*ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants,omitempty"`
	Images   []*ProductImage   `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`

	CreatedAt time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

type ProductVariant struct {
	tableName struct{}  `bun:"table:product_variants,alias:pv"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	Title     string    `bun:"title,notnull" json:"title" validate:"required,min=1,max=100"` // e.g. size "42 / Tan"
	SKU       string    `bun:"sku,notnull,unique" json:"sku" validate:"required,min=3,max=50"`
	Price     uint64    `bun:"price,notnull" json:"price" validate:"required,gte=0"`
	Stock     int       `bun:"stock,notnull,default:0" json:"stock" validate:"gte=0"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
}

type ProductImage struct {
	tableName  struct{}  `bun:"table:product_images,alias:pi"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId  uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	URL        string    `bun:"url,notnull" json:"url" validate:"required,url"`
	AltText    string    `bun:"alt_text" json:"alt_text,omitempty"`
	IsFeatured bool      `bun:"is_featured,notnull,default:false" json:"is_featured"`
	Position   int       `bun:"position,notnull,default:0" json:"position"`
}

type Collection struct {
	tableName   struct{}  `bun:"table:collections,alias:c"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Title       string    `bun:"title,notnull" json:"title" validate:"required,min=2,max=200"`
	Handle      string    `bun:"handle,notnull,unique" json:"handle" validate:"required,min=2,max=200"`
	Description string    `bun:"description" json:"description,omitempty"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type CollectionProduct struct {
	tableName    struct{}  `bun:"table:collection_products,alias:cp"`
	CollectionId uuid.UUID `bun:"collection_id,pk,type:uuid" json:"collection_id"`
	ProductId    uuid.UUID `bun:"product_id,pk,type:uuid" json:"product_id"`
	Position     int       `bun:"position,notnull,default:0" json:"position"`
}
