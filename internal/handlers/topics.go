package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/middlewares"
	"github.com/devfolio/devfolio-api/internal/models"
	"github.com/devfolio/devfolio-api/internal/services"
)

// TopicsService defines the interface that the topic service must implement.
type TopicsService interface {
	Create(ctx context.Context, ident models.Identity, name, description string, image *models.ImageUpload) (*models.TopicDB, error)
	List(ctx context.Context, page int, search string) (*models.TopicsPage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.TopicDB, error)
	Update(ctx context.Context, ident models.Identity, id uuid.UUID, name, description string, image *models.ImageUpload) (*models.TopicDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TopicResponse wraps a single topic
// swagger:model TopicResponse
type TopicResponse struct {
	Data models.TopicDB `json:"data"`
}

// NewCreateTopicHandler returns an HTTP handler that creates a topic.
// @Summary Create a topic
// @Description Creates a topic with an uploaded image. Requires authentication.
// @Tags topics
// @Accept mpfd
// @Produce json
// @Param name formData string true "Topic name"
// @Param description formData string true "Topic description"
// @Param image formData file true "Topic image (max 2MB)"
// @Success 201 {object} models.TopicDB "Topic created"
// @Failure 400 {object} handlers.MessageResponse "Missing field or bad image"
// @Failure 401 {object} handlers.MessageResponse "Unauthenticated"
// @Router /api/v1/topics [post]
// @Security BearerAuth
func NewCreateTopicHandler(svc TopicsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authentication required. Please login")
			return
		}

		image, err := formImage(r)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		topic, err := svc.Create(r.Context(), ident, r.FormValue("name"), r.FormValue("description"), image)
		if err != nil {
			writeTopicError(w, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, topic)
	}
}

// NewListTopicsHandler returns an HTTP handler that lists topics.
// @Summary List topics
// @Description Returns one page of topics, newest first, optionally filtered by a case-insensitive search over name and description.
// @Tags topics
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param search query string false "Search term"
// @Success 200 {object} models.TopicsPage "Page of topics"
// @Router /api/v1/topics [get]
func NewListTopicsHandler(svc TopicsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), pageParam(r), searchParam(r))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// NewGetTopicHandler returns an HTTP handler that fetches one topic.
// @Summary Get a topic
// @Description Returns a topic with its posts.
// @Tags topics
// @Produce json
// @Param id path string true "Topic id"
// @Success 200 {object} handlers.TopicResponse "Topic"
// @Failure 404 {object} handlers.MessageResponse "Topic not found"
// @Router /api/v1/topics/{id} [get]
func NewGetTopicHandler(svc TopicsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Topic not found")
			return
		}

		topic, err := svc.Get(r.Context(), id)
		if err != nil {
			writeTopicError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, TopicResponse{Data: *topic})
	}
}

// NewUpdateTopicHandler returns an HTTP handler that updates a topic.
// @Summary Update a topic
// @Description Rewrites a topic owned by the caller, replacing its image.
// @Tags topics
// @Accept mpfd
// @Produce json
// @Param id path string true "Topic id"
// @Param name formData string true "Topic name"
// @Param description formData string true "Topic description"
// @Param image formData file true "Topic image (max 2MB)"
// @Success 200 {object} models.TopicDB "Topic updated"
// @Failure 400 {object} handlers.MessageResponse "Missing field or bad image"
// @Failure 404 {object} handlers.MessageResponse "Not found or not owned"
// @Router /api/v1/topics/{id} [put]
// @Security BearerAuth
func NewUpdateTopicHandler(svc TopicsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authentication required. Please login")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Unauthorized to update this topic or topic not found")
			return
		}

		image, err := formImage(r)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		topic, err := svc.Update(r.Context(), ident, id, r.FormValue("name"), r.FormValue("description"), image)
		if err != nil {
			writeTopicError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, topic)
	}
}

// NewDeleteTopicHandler returns an HTTP handler that deletes a topic.
// @Summary Delete a topic
// @Description Removes a topic. Requires authentication but not ownership.
// @Tags topics
// @Produce json
// @Param id path string true "Topic id"
// @Success 200 {object} handlers.MessageResponse "Topic deleted"
// @Failure 404 {object} handlers.MessageResponse "Topic not found"
// @Router /api/v1/topics/{id} [delete]
// @Security BearerAuth
func NewDeleteTopicHandler(svc TopicsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Topic not found")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeTopicError(w, log, err)
			return
		}
		writeMessage(w, http.StatusOK, "Topic Deleted successfully")
	}
}

func writeTopicError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeMessage(w, http.StatusUnauthorized, "User not found please login again")
	case errors.Is(err, services.ErrAllFieldsRequired):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrImageRequired):
		writeMessage(w, http.StatusBadRequest, "Image file is required and must be an image")
	case errors.Is(err, services.ErrImageTooLarge):
		writeMessage(w, http.StatusBadRequest, "Image file must be under 2MB")
	case errors.Is(err, services.ErrTopicNotOwned):
		writeMessage(w, http.StatusNotFound, "Unauthorized to update this topic or topic not found")
	case errors.Is(err, services.ErrTopicNotFound):
		writeMessage(w, http.StatusNotFound, "Topic not found")
	default:
		writeServiceError(w, log, err)
	}
}
