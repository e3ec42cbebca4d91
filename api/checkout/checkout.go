package checkout

import (
	"errors"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/structs"
)

// Initialize reprices the cart, applies an optional coupon, and starts a
// gateway transaction. The checkout intent is sealed into an encrypted cookie
// so Verify can reconcile the redirect without trusting client input.
func (cr *CheckoutRoutesManager) Initialize(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CheckoutInitializeRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract checkout body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.invalidRequest"), gecho.Send())
		return
	}

	token, err := lib.GetCookieValue(lib.CartCookieName, r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.cartEmpty"), gecho.Send())
		return
	}

	cart, err := cr.cartService.GetByToken(r.Context(), token)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.BadRequest(w, gecho.WithMessage("error.checkout.cartEmpty"), gecho.Send())
			return
		}
		cr.logger.Error("Failed to load cart for checkout", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.checkout.initializing"), gecho.Send())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	session, err := cr.checkoutService.BuildSession(r.Context(), body, cart, userID)
	if err != nil {
		cr.respondCheckoutError(w, err)
		return
	}

	response, err := cr.checkoutService.Initialize(r.Context(), session)
	if err != nil {
		cr.logger.Error("Gateway initialization failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.checkout.gateway"), gecho.Send())
		return
	}

	sealed, err := cr.checkoutService.EncodeSession(session)
	if err != nil {
		cr.logger.Error("Failed to seal checkout session", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.checkout.initializing"), gecho.Send())
		return
	}
	lib.SetCookie(lib.CheckoutCookieName, sealed, time.Now().Add(cr.cfg.Checkout.SessionExpiry), w)

	gecho.Success(w,
		gecho.WithData(response),
		gecho.Send(),
	)
}

// Verify is hit by the storefront after the gateway redirect. It confirms the
// charge with the gateway and converts the checkout intent into an order.
// Re-verifying an already-settled reference returns the same order.
func (cr *CheckoutRoutesManager) Verify(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.missingReference"), gecho.Send())
		return
	}

	sealed, err := lib.GetCookieValue(lib.CheckoutCookieName, r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.sessionExpired"), gecho.Send())
		return
	}

	session, err := cr.checkoutService.DecodeSession(sealed)
	if err != nil {
		lib.ClearCookie(lib.CheckoutCookieName, w)
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.sessionExpired"), gecho.Send())
		return
	}

	order, err := cr.checkoutService.Verify(r.Context(), reference, session)
	if err != nil {
		cr.respondCheckoutError(w, err)
		return
	}

	lib.ClearCookie(lib.CheckoutCookieName, w)
	lib.ClearCookie(lib.CartCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("success.checkout.paymentConfirmed"),
		gecho.WithData(map[string]any{
			"order_number":  order.OrderNumber,
			"status":        order.Status,
			"total_amount":  order.TotalAmount,
			"currency_code": order.CurrencyCode,
		}),
		gecho.Send(),
	)
}

func (cr *CheckoutRoutesManager) respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lib.ErrCartEmpty):
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.cartEmpty"), gecho.Send())
	case errors.Is(err, lib.ErrInsufficientStock):
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.insufficientStock"), gecho.Send())
	case errors.Is(err, lib.ErrCouponInactive),
		errors.Is(err, lib.ErrCouponRequiresLogin),
		errors.Is(err, lib.ErrCouponNotStarted),
		errors.Is(err, lib.ErrCouponExpired),
		errors.Is(err, lib.ErrCouponExhausted),
		errors.Is(err, lib.ErrCouponMinOrder):
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.couponRejected"), gecho.Send())
	case errors.Is(err, lib.ErrPaymentNotSettled):
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.paymentNotSettled"), gecho.Send())
	case errors.Is(err, lib.ErrAmountMismatch):
		cr.logger.Error("Charge amount mismatch on verify", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.amountMismatch"), gecho.Send())
	case errors.Is(err, lib.ErrSessionMismatch):
		gecho.BadRequest(w, gecho.WithMessage("error.checkout.cartMismatch"), gecho.Send())
	case lib.IsNotFound(err):
		gecho.NotFound(w, gecho.WithMessage("error.checkout.cartEmpty"), gecho.Send())
	default:
		cr.logger.Error("Checkout failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.checkout.processing"), gecho.Send())
	}
}
