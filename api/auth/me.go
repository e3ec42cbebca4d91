package auth

import (
	"encoding/json"
	"net/http"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
)

func (ar *AuthRoutesManager) GetMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.signInRequired"), gecho.Send())
		return
	}

	user, err := ar.authService.GetUser(r.Context(), session.UserID)
	if err != nil {
		if lib.IsNotFound(err) {
			lib.ClearCookie(lib.UserCookieName, w)
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.sessionExpired"), gecho.Send())
			return
		}
		ar.logger.Error("Failed to fetch user", gecho.Field("error", err), gecho.Field("user_id", session.UserID))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.fetchingProfile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}

// UpdateMe applies partial profile updates. Unknown fields are rejected by
// the service's allow list.
func (ar *AuthRoutesManager) UpdateMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.signInRequired"), gecho.Send())
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || len(updates) == 0 {
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidProfile"), gecho.Send())
		return
	}

	user, err := ar.authService.UpdateProfile(r.Context(), session.UserID.String(), updates)
	if err != nil {
		ar.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", session.UserID))
		gecho.InternalServerError(w, gecho.WithMessage("error.auth.updatingProfile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("success.auth.profileUpdated"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
