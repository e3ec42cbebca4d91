package admin

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/lib"
	"ileke_server/structs"
)

func (ar *AdminRoutesManager) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := ar.couponService.List(r.Context())
	if err != nil {
		ar.logger.Error("Failed to list coupons", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.coupon.fetchingCoupons"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(coupons),
		gecho.Send(),
	)
}

// UpsertCoupon creates a coupon or updates the one with the same code.
func (ar *AdminRoutesManager) UpsertCoupon(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CouponUpsertRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract coupon body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.coupon.invalidCoupon"), gecho.Send())
		return
	}

	coupon, err := ar.couponService.Upsert(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.BadRequest(w, gecho.WithMessage("error.coupon.codeTaken"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to upsert coupon", gecho.Field("error", err), gecho.Field("code", body.Code))
		gecho.InternalServerError(w, gecho.WithMessage("error.coupon.saving"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.coupon.saved"),
		gecho.WithData(coupon),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.coupon.invalidId"), gecho.Send())
		return
	}

	if err := ar.couponService.Delete(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.coupon.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete coupon", gecho.Field("error", err), gecho.Field("coupon_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.coupon.deleting"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.coupon.deleted"),
		gecho.Send(),
	)
}
