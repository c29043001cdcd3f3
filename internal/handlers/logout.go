package handlers

import (
	"net/http"
)

// NewLogoutHandler returns an HTTP handler that clears the session cookie.
// Tokens are stateless, so logout is purely a transport concern.
// @Summary User logout
// @Description Clears the token cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Cookie cleared"
// @Router /api/auth/logout [post]
func NewLogoutHandler(production bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearAuthCookie(w, production)
		writeMessage(w, http.StatusOK, "Logged out successfully")
	}
}
