package coupons

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/structs"
)

// couponErrorKeys maps validation failures to client-facing message keys.
var couponErrorKeys = map[error]string{
	lib.ErrNotFound:            "error.coupon.notFound",
	lib.ErrCouponInactive:      "error.coupon.inactive",
	lib.ErrCouponRequiresLogin: "error.coupon.requiresLogin",
	lib.ErrCouponNotStarted:    "error.coupon.notStarted",
	lib.ErrCouponExpired:       "error.coupon.expired",
	lib.ErrCouponExhausted:     "error.coupon.exhausted",
	lib.ErrCouponMinOrder:      "error.coupon.minOrderNotMet",
}

// ValidateCoupon checks a code against the shopper's cart total and reports
// the discount it would grant. Nothing is redeemed here.
func (cr *CouponRoutesManager) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CouponValidateRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract coupon body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.coupon.invalidRequest"), gecho.Send())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	sessionID, _ := lib.GetCookieValue(lib.CartCookieName, r)

	coupon, discount, err := cr.couponService.Validate(r.Context(), body.Code, body.CartTotal, userID, sessionID)
	if err != nil {
		for sentinel, key := range couponErrorKeys {
			if errors.Is(err, sentinel) {
				gecho.BadRequest(w, gecho.WithMessage(key), gecho.Send())
				return
			}
		}
		cr.logger.Error("Coupon validation failed", gecho.Field("error", err), gecho.Field("code", body.Code))
		gecho.InternalServerError(w, gecho.WithMessage("error.coupon.validating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.CouponValidateResponse{
			Code:           coupon.Code,
			DiscountType:   coupon.DiscountType,
			DiscountAmount: discount,
		}),
		gecho.Send(),
	)
}
