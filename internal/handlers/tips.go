package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/middlewares"
	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

// TipsService defines the interface that the tip service must implement.
type TipsService interface {
	Create(ctx context.Context, ident models.Identity, title, description string) (*models.TipDB, error)
	List(ctx context.Context, page int, search string) (*models.TipsPage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TipDB, error)
	Update(ctx context.Context, ident models.Identity, id uuid.UUID, title, description string) (*models.TipDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TipRequest represents the JSON body for creating or updating a tip
// swagger:model TipRequest
type TipRequest struct {
	// Title
	// required: true
	// example: Use context everywhere
	Title string `json:"title"`

	// Description
	// required: true
	// example: Pass context.Context through every blocking call.
	Description string `json:"description"`
}

// TipResponse wraps a single tip
// swagger:model TipResponse
type TipResponse struct {
	Data models.TipDB `json:"data"`
}

// NewCreateTipHandler returns an HTTP handler that creates a tip.
// @Summary Create a tip
// @Description Creates a tip owned by the caller. Requires authentication.
// @Tags tips
// @Accept json
// @Produce json
// @Param tipRequest body handlers.TipRequest true "Tip fields"
// @Success 201 {object} models.TipDB "Tip created"
// @Failure 400 {object} handlers.MessageResponse "Missing field"
// @Failure 401 {object} handlers.MessageResponse "Unauthenticated"
// @Router /api/v1/tips [post]
// @Security BearerAuth
func NewCreateTipHandler(svc TipsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authentication required. Please login")
			return
		}

		var req TipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Title and Description Required")
			return
		}

		tip, err := svc.Create(r.Context(), ident, req.Title, req.Description)
		if err != nil {
			writeTipError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, tip)
	}
}

// NewListTipsHandler returns an HTTP handler that lists tips.
// @Summary List tips
// @Description Returns one page of tips, newest first, optionally filtered by a case-insensitive search over title and description.
// @Tags tips
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param search query string false "Search term"
// @Success 200 {object} models.TipsPage "Page of tips"
// @Router /api/v1/tips [get]
func NewListTipsHandler(svc TipsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), pageParam(r), searchParam(r))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// NewGetTipHandler returns an HTTP handler that fetches one tip.
// @Summary Get a tip
// @Tags tips
// @Produce json
// @Param id path string true "Tip id"
// @Success 200 {object} handlers.TipResponse "Tip"
// @Failure 404 {object} handlers.MessageResponse "Tip not found"
// @Router /api/v1/tips/{id} [get]
func NewGetTipHandler(svc TipsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Tip not found")
			return
		}

		tip, err := svc.Get(r.Context(), id)
		if err != nil {
			writeTipError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, TipResponse{Data: *tip})
	}
}

// NewUpdateTipHandler returns an HTTP handler that updates a tip owned by
// the caller.
// @Summary Update a tip
// @Description Rewrites a tip owned by the caller.
// @Tags tips
// @Accept json
// @Produce json
// @Param id path string true "Tip id"
// @Param tipRequest body handlers.TipRequest true "Tip fields"
// @Success 200 {object} models.TipDB "Tip updated"
// @Failure 400 {object} handlers.MessageResponse "Missing field"
// @Failure 404 {object} handlers.MessageResponse "Not found or not owned"
// @Router /api/v1/tips/{id} [put]
// @Security BearerAuth
func NewUpdateTipHandler(svc TipsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authentication required. Please login")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Unauthorized to update this tip or tip not found")
			return
		}

		var req TipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Title and Description Required")
			return
		}

		tip, err := svc.Update(r.Context(), ident, id, req.Title, req.Description)
		if err != nil {
			writeTipError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, tip)
	}
}

// NewDeleteTipHandler returns an HTTP handler that deletes a tip.
// @Summary Delete a tip
// @Description Removes a tip. Requires authentication but not ownership.
// @Tags tips
// @Produce json
// @Param id path string true "Tip id"
// @Success 200 {object} handlers.MessageResponse "Tip deleted"
// @Failure 404 {object} handlers.MessageResponse "Tip not found"
// @Router /api/v1/tips/{id} [delete]
// @Security BearerAuth
func NewDeleteTipHandler(svc TipsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Tip not found")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeTipError(w, log, err)
			return
		}
		writeMessage(w, http.StatusOK, "Tip Deleted successfully")
	}
}

func writeTipError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeMessage(w, http.StatusUnauthorized, "User not found please login again")
	case errors.Is(err, services.ErrAllFieldsRequired):
		writeMessage(w, http.StatusBadRequest, "Title and Description Required")
	case errors.Is(err, services.ErrTipNotOwned):
		writeMessage(w, http.StatusNotFound, "Unauthorized to update this tip or tip not found")
	case errors.Is(err, services.ErrTipNotFound):
		writeMessage(w, http.StatusNotFound, "Tip not found")
	default:
		writeServiceError(w, log, err)
	}
}
