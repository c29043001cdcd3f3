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

// Registerer defines the interface that the auth service must implement.
type Registerer interface {
	Register(ctx context.Context, name, email, password string) (*models.UserDB, string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name
	// required: true
	// example: Jane Doe
	Name string `json:"name"`

	// Email
	// required: true
	// example: jane@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// AuthUser is the public identity returned by auth endpoints
// swagger:model AuthUser
type AuthUser struct {
	// User id
	ID string `json:"id"`

	// Display name
	// example: Jane Doe
	Name string `json:"name"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	User AuthUser `json:"user"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user account and issues a session cookie. At most two users may exist.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User created, token cookie set"
// @Failure 400 {object} handlers.MessageResponse "Missing field, bad email, or email already in use"
// @Failure 403 {object} handlers.MessageResponse "Registration limit reached"
// @Router /api/auth/register [post]
func NewRegisterHandler(svc Registerer, production bool, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "All fields are required")
			return
		}

		user, token, err := svc.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRegistrationClosed):
				writeMessage(w, http.StatusForbidden, "Registration limit reached. Only two users are allowed.")
			case errors.Is(err, services.ErrAllFieldsRequired):
				writeMessage(w, http.StatusBadRequest, "All fields are required")
			case errors.Is(err, services.ErrInvalidEmail):
				writeMessage(w, http.StatusBadRequest, "Invalid email address")
			case errors.Is(err, services.ErrEmailTaken):
				writeMessage(w, http.StatusBadRequest, "Email already in use")
			default:
				writeServiceError(w, log, err)
			}
			return
		}

		setAuthCookie(w, token, production)
		writeJSON(w, http.StatusCreated, RegisterResponse{
			User: AuthUser{ID: user.ID.String(), Name: user.Name},
		})
	}
}
