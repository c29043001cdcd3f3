package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/jwt"
	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

// Verifier defines the interface that the auth service must implement.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (*models.UserDB, error)
}

// VerifyUser is the identity returned by the verify endpoint
// swagger:model VerifyUser
type VerifyUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VerifyResponse represents a valid session
// swagger:model VerifyResponse
type VerifyResponse struct {
	Valid bool       `json:"valid"`
	User  VerifyUser `json:"user"`
}

// NewVerifyHandler returns an HTTP handler that validates the current
// session. The token is read from the cookie only, and the user must still
// exist.
// @Summary Verify session
// @Description Validates the token cookie and confirms the user still exists.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.VerifyResponse "Session valid"
// @Failure 401 {object} handlers.MessageResponse "Missing, invalid or expired token"
// @Router /api/auth/verify [get]
func NewVerifyHandler(svc Verifier, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(jwt.CookieName)
		if err != nil || cookie.Value == "" {
			writeMessage(w, http.StatusUnauthorized, "No token provided")
			return
		}

		user, err := svc.Verify(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				writeMessage(w, http.StatusUnauthorized, "Token expired. Please login again")
			case errors.Is(err, jwt.ErrTokenMalformed):
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusUnauthorized, "User not found")
			default:
				writeServiceError(w, log, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, VerifyResponse{
			Valid: true,
			User:  VerifyUser{ID: user.ID.String(), Name: user.Name, Email: user.Email},
		})
	}
}
