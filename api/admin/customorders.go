package admin

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/structs"
)

func (ar *AdminRoutesManager) ListCustomOrderRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	status := r.URL.Query().Get("status")

	result, err := ar.customOrderService.AdminListRequests(r.Context(), page, pageSize, status)
	if err != nil {
		ar.logger.Error("Failed to list custom order requests", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.fetchingRequests"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

// GetCustomOrderRequest returns a request with its full quote history,
// newest version first.
func (ar *AdminRoutesManager) GetCustomOrderRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidId"), gecho.Send())
		return
	}

	request, quotes, err := ar.customOrderService.AdminGetRequest(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.customOrder.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to fetch custom order request", gecho.Field("error", err), gecho.Field("request_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.fetchingRequest"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"request": request,
			"quotes":  quotes,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) UpdateCustomOrderRequest(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CustomOrderRequestUpdate](r)
	if err != nil {
		ar.logger.Warn("Failed to extract request update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidUpdate"), gecho.Send())
		return
	}

	request, err := ar.customOrderService.AdminUpdateRequest(r.Context(), id, body)
	if err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("error.customOrder.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrInvalidTransition):
			gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidTransition"), gecho.Send())
		default:
			ar.logger.Error("Failed to update custom order request", gecho.Field("error", err), gecho.Field("request_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("error.customOrder.updating"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.customOrder.updated"),
		gecho.WithData(request),
		gecho.Send(),
	)
}

// IssueQuote sends a new quote version to the customer. Any open earlier
// version is expired in the same transaction.
func (ar *AdminRoutesManager) IssueQuote(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.customOrder.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.QuoteIssueRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract quote body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.quote.invalidQuote"), gecho.Send())
		return
	}

	issuedBy := ""
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		issuedBy = claims.Email
	}

	quote, err := ar.customOrderService.IssueQuote(r.Context(), id, body, issuedBy)
	if err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("error.customOrder.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrQuoteAlreadyPaid):
			gecho.BadRequest(w, gecho.WithMessage("error.quote.alreadyPaid"), gecho.Send())
		default:
			ar.logger.Error("Failed to issue quote", gecho.Field("error", err), gecho.Field("request_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("error.quote.issuing"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.quote.issued"),
		gecho.WithData(quote),
		gecho.Send(),
	)
}
