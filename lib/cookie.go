package lib

import (
	"ileke_server/config"
	"net/http"
	"time"
)

// Cookie names used across the API.
const (
	AccessCookieName   = "admin-session"
	UserCookieName     = "user-session"
	CartCookieName     = "cart-token"
	CheckoutCookieName = "checkout-session"
	QuoteCookieName    = "custom-quote-session"
	CSRFCookieName     = "csrf"
)

func cookieDefaults() (sameSite http.SameSite, secure bool, domain string) {
	sameSite = http.SameSiteLaxMode
	secure = false
	domain = ""

	if config.IsProduction() {
		// Required for cross-subdomain cookies (www <-> api)
		sameSite = http.SameSiteNoneMode
		secure = true
		domain = config.GetConfig().Server.CookieDomain
	}
	return
}

// SetCookie sets a secure, HttpOnly cookie.
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	sameSite, secure, domain := cookieDefaults()

	http.SetCookie(w, &http.Cookie{
		Name:     key,
		Value:    val,
		Expires:  expiry,
		Path:     "/",
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: true,
	})
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser.
func ClearCookie(key string, w http.ResponseWriter) {
	sameSite, secure, domain := cookieDefaults()

	http.SetCookie(w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: true,
	})
}

// SetCSRFCookie sets a CSRF token cookie that must be readable by JavaScript.
func SetCSRFCookie(val string, expiry time.Time, w http.ResponseWriter) {
	sameSite, secure, domain := cookieDefaults()

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    val,
		Expires:  expiry,
		MaxAge:   int(time.Until(expiry).Seconds()),
		Path:     "/",
		Domain:   domain,
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: false, // Must be readable by JS
	})
}
