package orders

import (
	"ileke_server/api/middleware"
	"ileke_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	mw           *middleware.Middleware
}

func NewOrderRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	mw *middleware.Middleware,
) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		mw:           mw,
	}
}

func (or *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/orders/track", or.TrackOrder)

	r.Group(func(r chi.Router) {
		r.Use(or.mw.UserAuthMiddleware)
		r.Get("/orders/me", or.ListMyOrders)
	})
}
