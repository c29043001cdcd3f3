package handlers

import (
	"net/http"
	"time"

	"github.com/devfolio/devfolio-api/internal/jwt"
)

// setAuthCookie stores the session token in an HTTP-only cookie. In
// production the cookie is cross-site capable (SameSite=None requires
// Secure); in development it stays Lax so plain HTTP works.
func setAuthCookie(w http.ResponseWriter, token string, production bool) {
	c := &http.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	http.SetCookie(w, c)
}

// clearAuthCookie expires the session cookie with matching flags.
func clearAuthCookie(w http.ResponseWriter, production bool) {
	c := &http.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	http.SetCookie(w, c)
}
