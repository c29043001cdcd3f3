package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
)

// ErrPostNotFound is returned when the post does not exist.
var ErrPostNotFound = errors.New("post not found")

// PostReader defines read-only operations for posts.
type PostReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.PostDB, error)
	List(ctx context.Context, search string, offset, limit int) ([]models.PostDB, int64, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, title, slug, content, image string, topicID uuid.UUID) (*models.PostDB, error)
	Update(ctx context.Context, id uuid.UUID, title, slug, content, image string, topicID uuid.UUID) (*models.PostDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostService handles post CRUD with image upload and slug derivation.
type PostService struct {
	reader   PostReader
	writer   PostWriter
	uploader MediaUploader
	log      *zap.SugaredLogger
}

// NewPostService creates a new PostService instance.
func NewPostService(reader PostReader, writer PostWriter, uploader MediaUploader, log *zap.SugaredLogger) *PostService {
	return &PostService{
		reader:   reader,
		writer:   writer,
		uploader: uploader,
		log:      log,
	}
}

// Create validates fields and the image, derives the slug from the title,
// uploads the image and persists the post under its topic.
func (svc *PostService) Create(ctx context.Context, ident models.Identity, title, content string, topicID uuid.UUID, image *models.ImageUpload) (*models.PostDB, error) {
	defer removeTemp(image)

	if title == "" || content == "" || topicID == uuid.Nil {
		return nil, ErrAllFieldsRequired
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	url, err := svc.uploader.Upload(ctx, image.TempPath)
	if err != nil {
		svc.log.Errorw("image upload failed", "err", err)
		return nil, err
	}

	post, err := svc.writer.Save(ctx, title, Slugify(title), content, url, topicID)
	if err != nil {
		svc.log.Errorw("failed to save post", "err", err)
		return nil, err
	}
	return post, nil
}

// List returns one page of posts ordered by creation time descending.
func (svc *PostService) List(ctx context.Context, page int, search string) (*models.PostsPage, error) {
	page = normalizePage(page)

	posts, total, err := svc.reader.List(ctx, search, (page-1)*PageSize, PageSize)
	if err != nil {
		svc.log.Errorw("failed to list posts", "err", err)
		return nil, err
	}

	return &models.PostsPage{
		CurrentPage: page,
		TotalPages:  totalPages(total),
		TotalItems:  total,
		PerPage:     PageSize,
		Data:        posts,
	}, nil
}

// Get returns a single post with its parent topic name.
func (svc *PostService) Get(ctx context.Context, id uuid.UUID) (*models.PostDB, error) {
	post, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get post", "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update re-validates everything Create validates and re-derives the slug.
// Any authenticated user may update any post; there is no ownership check
// here, unlike topics and tips.
func (svc *PostService) Update(ctx context.Context, ident models.Identity, id uuid.UUID, title, content string, topicID uuid.UUID, image *models.ImageUpload) (*models.PostDB, error) {
	defer removeTemp(image)

	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get post", "err", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}

	if title == "" || content == "" || topicID == uuid.Nil {
		return nil, ErrAllFieldsRequired
	}
	if err := validateImage(image); err != nil {
		return nil, err
	}

	url, err := svc.uploader.Upload(ctx, image.TempPath)
	if err != nil {
		svc.log.Errorw("image upload failed", "err", err)
		return nil, err
	}

	post, err := svc.writer.Update(ctx, id, title, Slugify(title), content, url, topicID)
	if err != nil {
		svc.log.Errorw("failed to update post", "err", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Delete removes a post after an existence check. Ownership is deliberately
// not checked on delete.
func (svc *PostService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get post", "err", err)
		return err
	}
	if existing == nil {
		return ErrPostNotFound
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		svc.log.Errorw("failed to delete post", "err", err)
		return err
	}
	return nil
}
