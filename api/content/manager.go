package content

import (
	"ileke_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ContentRoutesManager struct {
	logger         *gecho.Logger
	contentService *services.ContentService
}

func NewContentRoutesManager(
	logger *gecho.Logger,
	contentService *services.ContentService,
) *ContentRoutesManager {
	return &ContentRoutesManager{
		logger:         logger,
		contentService: contentService,
	}
}

func (cr *ContentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/pages/{handle}", cr.GetPage)
	r.Get("/menus/{handle}", cr.GetMenu)
	r.Get("/testimonials", cr.ListTestimonials)
	r.Post("/reviews", cr.CreateReview)
}
