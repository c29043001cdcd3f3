package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

// Loginer defines the interface that the auth service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: jane@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response. The token is echoed
// in the body for non-cookie clients.
// swagger:model LoginResponse
type LoginResponse struct {
	User    AuthUser `json:"user"`
	Token   string   `json:"token"`
	Message string   `json:"message"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user, sets the token cookie and returns the token.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Token cookie set"
// @Failure 401 {object} handlers.MessageResponse "Invalid credentials"
// @Router /api/auth/login [post]
func NewLoginHandler(svc Loginer, production bool, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusUnauthorized, "Invalid Credentials")
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeMessage(w, http.StatusUnauthorized, "Invalid Credentials")
				return
			}
			writeServiceError(w, log, err)
			return
		}

		setAuthCookie(w, token, production)
		writeJSON(w, http.StatusOK, LoginResponse{
			User:    AuthUser{ID: user.ID.String(), Name: user.Name},
			Token:   token,
			Message: "Login Successful",
		})
	}
}
