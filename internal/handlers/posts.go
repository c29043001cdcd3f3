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

// PostsService defines the interface that the post service must implement.
type PostsService interface {
	Create(ctx context.Context, ident models.Identity, title, content string, topicID uuid.UUID, image *models.ImageUpload) (*models.PostDB, error)
	List(ctx context.Context, page int, search string) (*models.PostsPage, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PostDB, error)
	Update(ctx context.Context, ident models.Identity, id uuid.UUID, title, content string, topicID uuid.UUID, image *models.ImageUpload) (*models.PostDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostResponse wraps a single post
// swagger:model PostResponse
type PostResponse struct {
	Data models.PostDB `json:"data"`
}

// NewCreatePostHandler returns an HTTP handler that creates a post. The slug
// is derived from the title server-side.
// @Summary Create a post
// @Description Creates a post under a topic with an uploaded image. Requires authentication.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param title formData string true "Post title"
// @Param content formData string true "Post content"
// @Param topicId formData string true "Parent topic id"
// @Param image formData file true "Post image (max 2MB)"
// @Success 201 {object} models.PostDB "Post created"
// @Failure 400 {object} handlers.MessageResponse "Missing field or bad image"
// @Failure 401 {object} handlers.MessageResponse "Unauthenticated"
// @Router /api/v1/posts [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostsService, log *zap.SugaredLogger) http.HandlerFunc {
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

		topicID, err := uuid.Parse(r.FormValue("topicId"))
		if err != nil {
			topicID = uuid.Nil
		}

		post, err := svc.Create(r.Context(), ident, r.FormValue("title"), r.FormValue("content"), topicID, image)
		if err != nil {
			writePostError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

// NewListPostsHandler returns an HTTP handler that lists posts.
// @Summary List posts
// @Description Returns one page of posts, newest first, optionally filtered by a case-insensitive search over title and content.
// @Tags posts
// @Produce json
// @Param page query int false "Page number, defaults to 1"
// @Param search query string false "Search term"
// @Success 200 {object} models.PostsPage "Page of posts"
// @Router /api/v1/posts [get]
func NewListPostsHandler(svc PostsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), pageParam(r), searchParam(r))
		if err != nil {
			writeServiceError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// NewGetPostHandler returns an HTTP handler that fetches one post.
// @Summary Get a post
// @Description Returns a post with its parent topic name.
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} handlers.PostResponse "Post"
// @Failure 404 {object} handlers.MessageResponse "Post not found"
// @Router /api/v1/posts/{id} [get]
func NewGetPostHandler(svc PostsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}

		post, err := svc.Get(r.Context(), id)
		if err != nil {
			writePostError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, PostResponse{Data: *post})
	}
}

// NewUpdatePostHandler returns an HTTP handler that updates a post. Any
// authenticated user may update any post.
// @Summary Update a post
// @Description Rewrites a post, re-deriving its slug and replacing its image.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param id path string true "Post id"
// @Param title formData string true "Post title"
// @Param content formData string true "Post content"
// @Param topicId formData string true "Parent topic id"
// @Param image formData file true "Post image (max 2MB)"
// @Success 200 {object} models.PostDB "Post updated"
// @Failure 400 {object} handlers.MessageResponse "Missing field or bad image"
// @Failure 404 {object} handlers.MessageResponse "Post not found"
// @Router /api/v1/posts/{id} [put]
// @Security BearerAuth
func NewUpdatePostHandler(svc PostsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Authentication required. Please login")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}

		image, err := formImage(r)
		if err != nil {
			writeServiceError(w, log, err)
			return
		}

		topicID, err := uuid.Parse(r.FormValue("topicId"))
		if err != nil {
			topicID = uuid.Nil
		}

		post, err := svc.Update(r.Context(), ident, id, r.FormValue("title"), r.FormValue("content"), topicID, image)
		if err != nil {
			writePostError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// NewDeletePostHandler returns an HTTP handler that deletes a post.
// @Summary Delete a post
// @Description Removes a post. Requires authentication but not ownership.
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} handlers.MessageResponse "Post deleted"
// @Failure 404 {object} handlers.MessageResponse "Post not found"
// @Router /api/v1/posts/{id} [delete]
// @Security BearerAuth
func NewDeletePostHandler(svc PostsService, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writePostError(w, log, err)
			return
		}
		writeMessage(w, http.StatusOK, "Post deleted successfully")
	}
}

func writePostError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, services.ErrAllFieldsRequired):
		writeMessage(w, http.StatusBadRequest, "All fields are required")
	case errors.Is(err, services.ErrImageRequired):
		writeMessage(w, http.StatusBadRequest, "Image file is required and must be an image")
	case errors.Is(err, services.ErrImageTooLarge):
		writeMessage(w, http.StatusBadRequest, "Image file must be under 2MB")
	case errors.Is(err, services.ErrPostNotFound):
		writeMessage(w, http.StatusNotFound, "Post not found")
	default:
		writeServiceError(w, log, err)
	}
}
