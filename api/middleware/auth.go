package middleware

import (
	"context"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"

	"ileke_server/lib"
	"ileke_server/structs"
)

// Context keys for storing auth data in request context
type contextKey string

const (
	ClaimsContextKey  contextKey = "claims"
	SessionContextKey contextKey = "session"
)

// AdminAuthMiddleware protects routes to authenticated admins. It reads the
// signed JWT from the admin session cookie.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r)
		if err != nil {
			mw.logger.Warn("Failed to extract admin claims from request", gecho.Field("error", err))
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.invalidSession"), gecho.Send())
			return
		}

		if claims.Role != "admin" {
			mw.logger.Warn("Non-admin token on admin route",
				gecho.Field("sub", claims.Sub),
				gecho.Field("role", claims.Role),
			)
			gecho.Forbidden(w, gecho.WithMessage("error.auth.adminRequired"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserAuthMiddleware protects routes to signed-in customers. Customer
// sessions are HMAC-signed cookie payloads, not JWTs.
func (mw *Middleware) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value, err := lib.GetCookieValue(lib.UserCookieName, r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.signInRequired"), gecho.Send())
			return
		}

		session, err := lib.VerifyUserSession(value)
		if err != nil {
			mw.logger.Warn("Invalid customer session cookie", gecho.Field("error", err))
			lib.ClearCookie(lib.UserCookieName, w)
			gecho.Unauthorized(w, gecho.WithMessage("error.auth.sessionExpired"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalUserMiddleware attaches the customer session when a valid cookie is
// present and lets the request through either way. Used on routes that behave
// differently for signed-in customers (carts, coupons, checkout).
func (mw *Middleware) OptionalUserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value, err := lib.GetCookieValue(lib.UserCookieName, r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := lib.VerifyUserSession(value)
		if err != nil {
			lib.ClearCookie(lib.UserCookieName, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext extracts admin claims placed by AdminAuthMiddleware.
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}

// GetSessionFromContext extracts the customer session placed by
// UserAuthMiddleware or OptionalUserMiddleware.
func GetSessionFromContext(ctx context.Context) (*structs.UserSession, bool) {
	session, ok := ctx.Value(SessionContextKey).(*structs.UserSession)
	return session, ok
}

// UserIDFromContext returns the signed-in customer's id, or nil for guests.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return nil
	}
	id := session.UserID
	return &id
}
