package orders

import (
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
)

// TrackOrder resolves an order by its number and the email it was placed
// with. A wrong email gets the same not-found answer as a wrong number so
// order numbers cannot be probed for customer data.
func (or *OrderRoutesManager) TrackOrder(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	orderNumber := query.Get("order_number")
	email := query.Get("email")

	if orderNumber == "" || email == "" {
		gecho.BadRequest(w, gecho.WithMessage("error.order.trackingFieldsRequired"), gecho.Send())
		return
	}

	track, err := or.orderService.Track(r.Context(), orderNumber, email)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("error.order.notFound"), gecho.Send())
			return
		}
		or.logger.Error("Order tracking failed", gecho.Field("error", err), gecho.Field("order_number", orderNumber))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.tracking"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(track),
		gecho.Send(),
	)
}

// ListMyOrders returns the signed-in customer's order history.
func (or *OrderRoutesManager) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.signInRequired"), gecho.Send())
		return
	}

	orders, err := or.orderService.ListForUser(r.Context(), session.UserID)
	if err != nil {
		or.logger.Error("Failed to list customer orders", gecho.Field("error", err), gecho.Field("user_id", session.UserID))
		gecho.InternalServerError(w, gecho.WithMessage("error.order.fetchingOrders"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(orders),
		gecho.Send(),
	)
}
