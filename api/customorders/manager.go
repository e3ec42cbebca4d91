package customorders

import (
	"ileke_server/api/middleware"
	"ileke_server/services"
	"ileke_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CustomOrderRoutesManager struct {
	logger             *gecho.Logger
	cfg                *structs.Config
	customOrderService *services.CustomOrderService
	mw                 *middleware.Middleware
}

func NewCustomOrderRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	customOrderService *services.CustomOrderService,
	mw *middleware.Middleware,
) *CustomOrderRoutesManager {
	return &CustomOrderRoutesManager{
		logger:             logger,
		cfg:                cfg,
		customOrderService: customOrderService,
		mw:                 mw,
	}
}

func (cr *CustomOrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/custom-orders", func(r chi.Router) {
		r.Use(cr.mw.OptionalUserMiddleware)
		r.Post("/", cr.CreateRequest)
		r.Get("/track", cr.TrackRequest)
		r.Post("/{number}/images", cr.UploadReferenceImage)

		r.Get("/quote", cr.GetQuote)
		r.Post("/quote/pay", cr.PayQuote)
		r.Get("/quote/verify", cr.VerifyQuotePayment)

		r.Post("/sweep", cr.RunSweep)
	})
}
