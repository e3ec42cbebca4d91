package checkout

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/structs"
)

const paystackSignatureHeader = "x-paystack-signature"

// PaystackWebhook receives gateway events. Signature failures are rejected;
// everything else is acknowledged with 200 so the gateway stops retrying.
// Order creation itself happens on the Verify path, so the webhook only has
// to reconcile charges the customer never returned for.
func (cr *CheckoutRoutesManager) PaystackWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.webhook.invalidBody"), gecho.Send())
		return
	}

	if !cr.paystackService.VerifyWebhookSignature(body, r.Header.Get(paystackSignatureHeader)) {
		cr.logger.Warn("Webhook signature verification failed")
		gecho.Unauthorized(w, gecho.WithMessage("error.webhook.invalidSignature"), gecho.Send())
		return
	}

	var event structs.PaystackWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.webhook.invalidBody"), gecho.Send())
		return
	}

	if event.Event != "charge.success" {
		gecho.Success(w, gecho.Send())
		return
	}

	var charge structs.PaystackChargeData
	if err := json.Unmarshal(event.Data, &charge); err != nil || charge.Reference == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.webhook.invalidBody"), gecho.Send())
		return
	}

	if !cr.checkoutService.MarkWebhookProcessed(charge.Reference) {
		gecho.Success(w, gecho.Send())
		return
	}

	// The unique payment reference makes verification idempotent: if the
	// customer already came back through Verify, the order exists and there
	// is nothing left to do.
	if _, err := cr.orderService.GetByReference(r.Context(), charge.Reference); err == nil {
		gecho.Success(w, gecho.Send())
		return
	}

	cr.logger.Warn("Settled charge with no matching order, awaiting customer verify",
		gecho.Field("reference", charge.Reference),
		gecho.Field("amount", charge.Amount),
	)

	gecho.Success(w, gecho.Send())
}
