package cart

import (
	"errors"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/services"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

// Guest carts live for 30 days of inactivity.
const cartCookieTTL = 30 * 24 * time.Hour

// resolveCart loads the cart behind the cart-token cookie, creating one when
// the shopper has none yet. A signed-in customer's cart is attached to them.
func (cr *CartRoutesManager) resolveCart(w http.ResponseWriter, r *http.Request) (*tables.Cart, error) {
	token, _ := lib.GetCookieValue(lib.CartCookieName, r)
	userID := middleware.UserIDFromContext(r.Context())

	cart, err := cr.cartService.GetOrCreate(r.Context(), token, userID)
	if err != nil {
		return nil, err
	}

	if cart.Token != token {
		lib.SetCookie(lib.CartCookieName, cart.Token, time.Now().Add(cartCookieTTL), w)
	}

	if userID != nil && cart.UserId == nil {
		if err := cr.cartService.AttachUser(r.Context(), cart.Id, *userID); err != nil {
			cr.logger.Warn("Failed to attach cart to user", gecho.Field("error", err), gecho.Field("cart_id", cart.Id))
		}
	}

	return cart, nil
}

func (cr *CartRoutesManager) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := cr.resolveCart(w, r)
	if err != nil {
		cr.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("error.cart.fetchingCart"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(cartPayload(cart)),
		gecho.Send(),
	)
}

func (cr *CartRoutesManager) AddLine(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CartLineRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract cart line body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidLine"), gecho.Send())
		return
	}

	cart, err := cr.resolveCart(w, r)
	if err != nil {
		cr.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.fetchingCart"), gecho.Send())
		return
	}

	cart, err = cr.cartService.AddLine(r.Context(), cart, body)
	if err != nil {
		cr.respondCartError(w, err, "error.cart.addingLine")
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.cart.lineAdded"),
		gecho.WithData(cartPayload(cart)),
		gecho.Send(),
	)
}

func (cr *CartRoutesManager) UpdateLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidLineId"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CartLineUpdateRequest](r)
	if err != nil {
		cr.logger.Warn("Failed to extract cart line update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidLine"), gecho.Send())
		return
	}

	cart, err := cr.resolveCart(w, r)
	if err != nil {
		cr.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.fetchingCart"), gecho.Send())
		return
	}

	cart, err = cr.cartService.UpdateLine(r.Context(), cart, lineID, body.Quantity)
	if err != nil {
		cr.respondCartError(w, err, "error.cart.updatingLine")
		return
	}

	gecho.Success(w,
		gecho.WithData(cartPayload(cart)),
		gecho.Send(),
	)
}

func (cr *CartRoutesManager) RemoveLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("error.cart.invalidLineId"), gecho.Send())
		return
	}

	cart, err := cr.resolveCart(w, r)
	if err != nil {
		cr.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.fetchingCart"), gecho.Send())
		return
	}

	cart, err = cr.cartService.UpdateLine(r.Context(), cart, lineID, 0)
	if err != nil {
		cr.respondCartError(w, err, "error.cart.removingLine")
		return
	}

	gecho.Success(w,
		gecho.WithData(cartPayload(cart)),
		gecho.Send(),
	)
}

func (cr *CartRoutesManager) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := cr.resolveCart(w, r)
	if err != nil {
		cr.logger.Error("Failed to resolve cart", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.fetchingCart"), gecho.Send())
		return
	}

	if err := cr.cartService.Clear(r.Context(), cart.Id); err != nil {
		cr.logger.Error("Failed to clear cart", gecho.Field("error", err), gecho.Field("cart_id", cart.Id))
		gecho.InternalServerError(w, gecho.WithMessage("error.cart.clearingCart"), gecho.Send())
		return
	}

	cart.Lines = nil
	gecho.Success(w,
		gecho.WithMessage("success.cart.cleared"),
		gecho.WithData(cartPayload(cart)),
		gecho.Send(),
	)
}

func (cr *CartRoutesManager) respondCartError(w http.ResponseWriter, err error, fallbackKey string) {
	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("error.cart.lineNotFound"), gecho.Send())
	case errors.Is(err, lib.ErrInsufficientStock):
		gecho.BadRequest(w, gecho.WithMessage("error.cart.insufficientStock"), gecho.Send())
	case errors.Is(err, lib.ErrCartFull):
		gecho.BadRequest(w, gecho.WithMessage("error.cart.cartFull"), gecho.Send())
	default:
		cr.logger.Error("Cart operation failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage(fallbackKey), gecho.Send())
	}
}

func cartPayload(cart *tables.Cart) map[string]any {
	return map[string]any{
		"cart":     cart,
		"subtotal": services.Subtotal(cart),
	}
}
