package customorders

import (
	"errors"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"

	"ileke_server/lib"
	"ileke_server/structs"
)

// GetQuote resolves a quote access token and returns the quote with its
// request. Viewing a quote does not consume the token; only a settled
// payment does.
func (cr *CustomOrderRoutesManager) GetQuote(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.quote.missingToken"), gecho.Send())
		return
	}

	_, quote, request, err := cr.customOrderService.ResolveToken(r.Context(), rawToken)
	if err != nil {
		cr.respondTokenError(w, err)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"quote":   quote,
			"request": request,
		}),
		gecho.Send(),
	)
}

// PayQuote accepts a quote and starts the gateway transaction for it. The
// payment intent is sealed into an encrypted cookie for the verify redirect.
func (cr *CustomOrderRoutesManager) PayQuote(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.QuotePaymentRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract quote payment body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.quote.missingToken"), gecho.Send())
		return
	}

	response, session, err := cr.customOrderService.InitializeQuotePayment(r.Context(), body.Token)
	if err != nil {
		cr.respondTokenError(w, err)
		return
	}

	sealed, err := cr.customOrderService.EncodeQuoteSession(session)
	if err != nil {
		cr.logger.Error("Failed to seal quote session", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.quote.initializing"), gecho.Send())
		return
	}
	lib.SetCookie(lib.QuoteCookieName, sealed, time.Now().Add(cr.cfg.Checkout.SessionExpiry), w)

	gecho.Success(w,
		gecho.WithData(response),
		gecho.Send(),
	)
}

// VerifyQuotePayment confirms the charge after the gateway redirect and
// converts the paid quote into an order.
func (cr *CustomOrderRoutesManager) VerifyQuotePayment(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.quote.missingReference"), gecho.Send())
		return
	}

	sealed, err := lib.GetCookieValue(lib.QuoteCookieName, r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.quote.sessionExpired"), gecho.Send())
		return
	}

	session, err := cr.customOrderService.DecodeQuoteSession(sealed)
	if err != nil {
		lib.ClearCookie(lib.QuoteCookieName, w)
		gecho.BadRequest(w, gecho.WithMessage("error.quote.sessionExpired"), gecho.Send())
		return
	}

	order, err := cr.customOrderService.VerifyQuotePayment(r.Context(), reference, session)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrPaymentNotSettled):
			gecho.BadRequest(w, gecho.WithMessage("error.quote.paymentNotSettled"), gecho.Send())
		case errors.Is(err, lib.ErrAmountMismatch):
			cr.logger.Error("Quote charge amount mismatch", gecho.Field("error", err))
			gecho.BadRequest(w, gecho.WithMessage("error.quote.amountMismatch"), gecho.Send())
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("error.quote.notFound"), gecho.Send())
		default:
			cr.logger.Error("Quote payment verification failed", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("error.quote.verifying"), gecho.Send())
		}
		return
	}

	lib.ClearCookie(lib.QuoteCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("success.quote.paymentConfirmed"),
		gecho.WithData(map[string]any{
			"order_number":  order.OrderNumber,
			"status":        order.Status,
			"total_amount":  order.TotalAmount,
			"currency_code": order.CurrencyCode,
		}),
		gecho.Send(),
	)
}

// RunSweep expires lapsed quotes, sends reminders, and cancels stale
// requests. Intended to be hit by a scheduler, guarded by a shared secret.
func (cr *CustomOrderRoutesManager) RunSweep(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Cron-Secret")
	if cr.cfg.CustomOrders.CronSecret == "" || secret != cr.cfg.CustomOrders.CronSecret {
		gecho.Unauthorized(w, gecho.WithMessage("error.quote.invalidCronSecret"), gecho.Send())
		return
	}

	result, err := cr.customOrderService.Sweep(r.Context())
	if err != nil {
		cr.logger.Error("Quote sweep failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.quote.sweeping"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

func (cr *CustomOrderRoutesManager) respondTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lib.ErrExpiredToken), errors.Is(err, lib.ErrQuoteExpired):
		gecho.BadRequest(w, gecho.WithMessage("error.quote.expired"), gecho.Send())
	case errors.Is(err, lib.ErrQuoteAlreadyPaid):
		gecho.BadRequest(w, gecho.WithMessage("error.quote.alreadyPaid"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidToken), lib.IsNotFound(err):
		gecho.NotFound(w, gecho.WithMessage("error.quote.notFound"), gecho.Send())
	default:
		cr.logger.Error("Quote token resolution failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.quote.resolving"), gecho.Send())
	}
}
