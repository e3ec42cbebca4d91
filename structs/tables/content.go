package tables

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	tableName  struct{}  `bun:"table:reviews,alias:r"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	ProductId  uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id" validate:"required,uuid4"`
	AuthorName string    `bun:"author_name,notnull" json:"author_name" validate:"required,min=2,max=100"`
	Email      string    `bun:"email,notnull" json:"-" validate:"required,email"`
	Rating     int       `bun:"rating,notnull" json:"rating" validate:"required,min=1,max=5"`
	Body       string    `bun:"body,notnull" json:"body" validate:"required,min=5,max=2000"`
	IsApproved bool      `bun:"is_approved,notnull,default:false" json:"is_approved"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type Testimonial struct {
	tableName  struct{}  `bun:"table:testimonials,alias:t"`
	Id         uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	AuthorName string    `bun:"author_name,notnull" json:"author_name" validate:"required,min=2,max=100"`
	Quote      string    `bun:"quote,notnull" json:"quote" validate:"required,min=5,max=1000"`
	IsActive   bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	Position   int       `bun:"position,notnull,default:0" json:"position"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type Page struct {
	tableName struct{}  `bun:"table:pages,alias:pg"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Handle    string    `bun:"handle,notnull,unique" json:"handle" validate:"required,min=2,max=200"`
	Title     string    `bun:"title,notnull" json:"title" validate:"required,min=2,max=200"`
	Body      string    `bun:"body,notnull" json:"body" validate:"required"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type Menu struct {
	tableName struct{}    `bun:"table:menus,alias:m"`
	Id        uuid.UUID   `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Handle    string      `bun:"handle,notnull,unique" json:"handle" validate:"required,min=2,max=100"`
	Title     string      `bun:"title,notnull" json:"title" validate:"required,min=2,max=100"`
	Items     []*MenuItem `bun:"rel:has-many,join:id=menu_id" json:"items,omitempty"`
	CreatedAt time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type MenuItem struct {
	tableName struct{}  `bun:"table:menu_items,alias:mi"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	MenuId    uuid.UUID `bun:"menu_id,notnull,type:uuid" json:"menu_id"`
	Title     string    `bun:"title,notnull" json:"title" validate:"required,min=1,max=100"`
	URL       string    `bun:"url,notnull" json:"url" validate:"required,max=500"`
	Position  int       `bun:"position,notnull,default:0" json:"position"`
}
