package admin

import (
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"

	"ileke_server/api/middleware"
	"ileke_server/lib"
	"ileke_server/structs"
)

// Login authenticates an admin against the argon2 password hash and sets the
// signed session cookie. Failures are reported identically whether the email
// or the password was wrong.
func (ar *AdminRoutesManager) Login(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AdminLoginRequest](r)
	if err != nil {
		ar.logger.Warn("Failed to extract admin login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
		return
	}

	token, admin, err := ar.authService.AdminLogin(body)
	if err != nil {
		ar.logger.Warn("Admin login failed", gecho.Field("email", body.Email))
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidCredentials"), gecho.Send())
		return
	}

	lib.SetCookie(lib.AccessCookieName, token, time.Now().Add(ar.cfg.Auth.AccessTokenExpiry), w)

	admin.PasswordHash = ""

	gecho.Success(w,
		gecho.WithMessage("success.auth.loginSuccessful"),
		gecho.WithData(admin),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) Logout(w http.ResponseWriter, r *http.Request) {
	lib.ClearCookie(lib.AccessCookieName, w)
	gecho.Success(w,
		gecho.WithMessage("success.auth.signedOut"),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidSession"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"id":    claims.Sub,
			"email": claims.Email,
			"role":  claims.Role,
		}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := ar.orderService.Stats(r.Context())
	if err != nil {
		ar.logger.Error("Failed to compute order stats", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("error.admin.fetchingStats"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}
