package admin

import (
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/lib"
	"ileke_server/structs"
)

// ListOrders returns a paginated list of orders with optional status filters.
func (ar *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	query := r.URL.Query()

	result, err := ar.orderService.AdminList(r.Context(), page, pageSize, query.Get("status"), query.Get("delivery_status"))
	if err != nil {
		ar.logger.Error("Failed to list orders",
			gecho.Field("error", err),
			gecho.Field("page", page),
			gecho.Field("page_size", pageSize),
		)
		gecho.InternalServerError(w, gecho.WithMessage("error.order.fetchingOrders"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(result),
		gecho.Send(),
	)
}

// GetOrderDetails returns one order with decrypted contact details and items.
func (ar *AdminRoutesManager) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidId"), gecho.Send())
		return
	}

	order, items, err := ar.orderService.AdminGet(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.fetchingOrder"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order": order,
			"items": items,
		}),
		gecho.Send(),
	)
}

// UpdateOrder applies status, delivery status, tracking, and notes changes.
// Transitions outside the lifecycle tables are rejected.
func (ar *AdminRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderUpdateRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract order update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidUpdate"), gecho.Send())
		return
	}

	order, err := ar.orderService.AdminUpdate(r.Context(), id, body)
	if err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
		case errors.Is(err, lib.ErrInvalidTransition):
			gecho.BadRequest(w, gecho.WithMessage("error.order.invalidTransition"), gecho.Send())
		default:
			ar.logger.Error("Failed to update order", gecho.Field("error", err), gecho.Field("order_id", id))
			gecho.InternalServerError(w, gecho.WithMessage("error.order.updating"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.updated"),
		gecho.WithData(order),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.order.invalidId"), gecho.Send())
		return
	}

	if err := ar.orderService.AdminDelete(r.Context(), id); err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to delete order", gecho.Field("error", err), gecho.Field("order_id", id))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.deleting"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.order.deleted"),
		gecho.Send(),
	)
}
