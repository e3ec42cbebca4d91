package cart

import (
	"ileke_server/api/middleware"
	"ileke_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
	mw          *middleware.Middleware
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartService *services.CartService,
	mw *middleware.Middleware,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
		mw:          mw,
	}
}

func (cr *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(cr.mw.OptionalUserMiddleware)
		r.Get("/", cr.GetCart)
		r.Post("/lines", cr.AddLine)
		r.Patch("/lines/{id}", cr.UpdateLine)
		r.Delete("/lines/{id}", cr.RemoveLine)
		r.Delete("/", cr.ClearCart)
	})
}
