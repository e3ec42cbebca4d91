package checkout

import (
	"ileke_server/api/middleware"
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CheckoutRoutesManager struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	checkoutService *services.CheckoutService
	cartService     *services.CartService
	orderService    *services.OrderService
	paystackService *services.PaystackService
	mw              *middleware.Middleware
}

func NewCheckoutRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	checkoutService *services.CheckoutService,
	cartService *services.CartService,
	orderService *services.OrderService,
	paystackService *services.PaystackService,
	mw *middleware.Middleware,
) *CheckoutRoutesManager {
	return &CheckoutRoutesManager{
		logger:          logger,
		cfg:             cfg,
		checkoutService: checkoutService,
		cartService:     cartService,
		orderService:    orderService,
		paystackService: paystackService,
		mw:              mw,
	}
}

func (cr *CheckoutRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Use(cr.mw.OptionalUserMiddleware)
		r.Post("/initialize", cr.Initialize)
		r.Get("/verify", cr.Verify)
		r.Post("/webhook/paystack", cr.PaystackWebhook)
	})
}
