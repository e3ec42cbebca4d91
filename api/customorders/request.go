package customorders

import (
	"errors"
	"io"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/structs"
)

// CreateRequest takes a design brief from a customer and opens a custom
// order request.
func (cr *CustomOrderRoutesManager) CreateRequest(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CustomOrderRequestCreate](r)
	if err != nil {
		cr.logger.Warn("Failed to extract custom order body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidRequest"), gecho.Send())
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	request, err := cr.customOrderService.CreateRequest(r.Context(), body, userID)
	if err != nil {
		if errors.Is(err, lib.ErrFeatureDisabled) {
			gecho.Forbidden(w, gecho.WithMessage("error.customOrder.disabled"), gecho.Send())
			return
		}
		cr.logger.Error("Failed to create custom order request", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.creating"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.customOrder.requestReceived"),
		gecho.WithData(request),
		gecho.Send(),
	)
}

// TrackRequest looks up a request by its number and submission email. Wrong
// email and wrong number are indistinguishable to the caller.
func (cr *CustomOrderRoutesManager) TrackRequest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	requestNumber := query.Get("request_number")
	email := query.Get("email")

	if requestNumber == "" || email == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.trackingFieldsRequired"), gecho.Send())
		return
	}

	request, err := cr.customOrderService.TrackRequest(r.Context(), requestNumber, email)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.customOrder.notFound"), gecho.Send())
			return
		}
		cr.logger.Error("Custom order tracking failed", gecho.Field("error", err), gecho.Field("request_number", requestNumber))
		gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.tracking"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(request),
		gecho.Send(),
	)
}

// UploadReferenceImage attaches a normalized reference photo to a request.
// Uploads are rate limited per request via Redis.
func (cr *CustomOrderRoutesManager) UploadReferenceImage(w http.ResponseWriter, r *http.Request) {
	requestNumber := chi.URLParam(r, "number")

	r.Body = http.MaxBytesReader(w, r.Body, cr.cfg.CustomOrders.MaxUploadBytes)
	if err := r.ParseMultipartForm(cr.cfg.CustomOrders.MaxUploadBytes); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.uploadTooLarge"), gecho.Send())
		return
	}

	email := r.FormValue("email")
	if email == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.trackingFieldsRequired"), gecho.Send())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.missingImage"), gecho.Send())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidImage"), gecho.Send())
		return
	}

	url, err := cr.customOrderService.AttachReferenceImage(r.Context(), requestNumber, email, data, header.Filename)
	if err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("error.customOrder.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrTooManyImages):
			gecho.BadRequest(w, gecho.WithMessage("error.customOrder.tooManyImages"), gecho.Send())
		case errors.Is(err, lib.ErrRateLimited):
			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"message":"Too many uploads. Please try again later."}`, http.StatusTooManyRequests)
		default:
			cr.logger.Error("Reference image upload failed", gecho.Field("error", err), gecho.Field("request_number", requestNumber))
			gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.uploading"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.customOrder.imageAttached"),
		gecho.WithData(map[string]string{"url": url}),
		gecho.Send(),
	)
}
