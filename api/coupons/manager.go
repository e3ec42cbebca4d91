package coupons

import (
	"ileke_server/api/middleware"
	"ileke_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CouponRoutesManager struct {
	logger        *gecho.Logger
	couponService *services.CouponService
	mw            *middleware.Middleware
}

func NewCouponRoutesManager(
	logger *gecho.Logger,
	couponService *services.CouponService,
	mw *middleware.Middleware,
) *CouponRoutesManager {
	return &CouponRoutesManager{
		logger:        logger,
		couponService: couponService,
		mw:            mw,
	}
}

func (cr *CouponRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/coupons", func(r chi.Router) {
		r.Use(cr.mw.OptionalUserMiddleware)
		r.Post("/validate", cr.ValidateCoupon)
	})
}
