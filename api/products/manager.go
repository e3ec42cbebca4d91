package products

import (
	"ileke_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	contentService *services.ContentService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	contentService *services.ContentService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		contentService: contentService,
	}
}

func (pr *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", pr.ListProducts)
	r.Get("/products/{handle}", pr.GetProductByHandle)
	r.Get("/products/{handle}/reviews", pr.ListProductReviews)
	r.Get("/collections", pr.ListCollections)
	r.Get("/collections/{handle}", pr.GetCollectionByHandle)
}
