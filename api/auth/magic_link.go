package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"

	"ileke_server/lib"
	"ileke_server/structs"
)

// RequestMagicLink sends a single-use sign-in link. The response is the same
// whether or not the address has an account, so it cannot be used to probe
// for registered emails.
func (ar *AuthRoutesManager) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MagicLinkRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract magic link body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidEmail"), gecho.Send())
		return
	}

	if err := ar.authService.RequestMagicLink(body); err != nil {
		ar.logger.Error("Failed to create magic link", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.magicLink"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.auth.magicLinkSent"),
		gecho.Send(),
	)
}

// VerifyMagicLink exchanges a link token for a signed session cookie.
func (ar *AuthRoutesManager) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.MagicLinkVerifyRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract verify body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidToken"), gecho.Send())
		return
	}

	sessionValue, user, err := ar.authService.ConsumeMagicLink(body.Token)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrExpiredToken):
			gecho.BadRequest(w, gecho.WithMessage("error.auth.tokenExpired"), gecho.Send())
		case errors.Is(err, lib.ErrInvalidToken), lib.IsNotFound(err):
			gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidToken"), gecho.Send())
		default:
			ar.logger.Error("Magic link verification failed", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("error.auth.verifying"), gecho.Send())
		}
		return
	}

	lib.SetCookie(lib.UserCookieName, sessionValue, time.Now().Add(ar.cfg.Auth.SessionExpiry), w)

	// Claim the guest cart for the freshly signed-in customer.
	if token, err := lib.GetCookieValue(lib.CartCookieName, r); err == nil && token != "" {
		if cart, err := ar.cartService.GetByToken(r.Context(), token); err == nil && cart.UserId == nil {
			if err := ar.cartService.AttachUser(r.Context(), cart.Id, user.Id); err != nil {
				ar.logger.Warn("Failed to attach cart on sign-in", gecho.Field("error", err), gecho.Field("cart_id", cart.Id))
			}
		}
	}

	gecho.Success(w,
		gecho.WithMessage("success.auth.signedIn"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (ar *AuthRoutesManager) Logout(w http.ResponseWriter, r *http.Request) {
	lib.ClearCookie(lib.UserCookieName, w)
	gecho.Success(w,
		gecho.WithMessage("success.auth.signedOut"),
		gecho.Send(),
	)
}

// GetCSRFToken issues the double-submit token used by cookie-authenticated
// mutating requests.
func (ar *AuthRoutesManager) GetCSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GenerateCSRFToken()
	if err != nil {
		ar.logger.Error("Failed to generate csrf token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.csrf"), gecho.Send())
		return
	}

	lib.SetCSRFCookie(token, time.Now().Add(24*time.Hour), w)

	gecho.Success(w,
		gecho.WithData(map[string]string{"csrf_token": token}),
		gecho.Send(),
	)
}
