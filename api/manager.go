package api

import (
	"ileke_server/api/admin"
	"ileke_server/api/auth"
	"ileke_server/api/cart"
	"ileke_server/api/checkout"
	"ileke_server/api/content"
	"ileke_server/api/coupons"
	"ileke_server/api/customorders"
	"ileke_server/api/health"
	"ileke_server/api/middleware"
	"ileke_server/api/orders"
	"ileke_server/api/products"
	"ileke_server/api/sitemap"
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// routerManager owns every api area and fans route registration out to them.
type routerManager struct {
	areas []interface{ RegisterRoutes(chi.Router) }
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		areas: []interface{ RegisterRoutes(chi.Router) }{
			health.NewHealthRoutesManager(sm.HealthService),
			products.NewProductRoutesManager(logger, sm.ProductService, sm.ContentService),
			cart.NewCartRoutesManager(logger, sm.CartService, mw),
			coupons.NewCouponRoutesManager(logger, sm.CouponService, mw),
			checkout.NewCheckoutRoutesManager(logger, cfg, sm.CheckoutService, sm.CartService, sm.OrderService, sm.PaystackService, mw),
			orders.NewOrderRoutesManager(logger, sm.OrderService, mw),
			auth.NewAuthRoutesManager(logger, cfg, sm.AuthService, sm.CartService, mw),
			customorders.NewCustomOrderRoutesManager(logger, cfg, sm.CustomOrderService, mw),
			content.NewContentRoutesManager(logger, sm.ContentService),
			sitemap.NewSitemapRoutesManager(logger, cfg, sm.ContentService),
			admin.NewAdminRoutesManager(logger, cfg, sm.AuthService, sm.ProductService, sm.OrderService, sm.CouponService, sm.CustomOrderService, sm.ContentService, mw),
		},
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	for _, area := range rm.areas {
		area.RegisterRoutes(r)
	}
}
