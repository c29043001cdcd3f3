package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
)

var (
	// ErrTopicNotFound is returned when the topic does not exist.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrTopicNotOwned is returned when the topic is missing or owned by
	// another user. Callers present both cases identically so existence is
	// not leaked to non-owners.
	ErrTopicNotOwned = errors.New("topic not found or not owned")
)

// TopicReader defines read-only operations for topics.
type TopicReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TopicDB, error)
	List(ctx context.Context, search string, offset, limit int) ([]models.TopicDB, int64, error)
}

// TopicWriter defines write operations for topics.
type TopicWriter interface {
	Save(ctx context.Context, name, description, image string, userID uuid.UUID) (*models.TopicDB, error)
	Update(ctx context.Context, id uuid.UUID, name, description, image string) (*models.TopicDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TopicService handles topic CRUD with image upload.
type TopicService struct {
	reader   TopicReader
	writer   TopicWriter
	users    UserReader
	uploader MediaUploader
	log      *zap.SugaredLogger
}

// NewTopicService creates a new TopicService instance.
func NewTopicService(reader TopicReader, writer TopicWriter, users UserReader, uploader MediaUploader, log *zap.SugaredLogger) *TopicService {
	return &TopicService{
		reader:   reader,
		writer:   writer,
		users:    users,
		uploader: uploader,
		log:      log,
	}
}

// Create validates fields and the image, uploads the image and persists a
// topic owned by the caller.
func (svc *TopicService) Create(ctx context.Context, ident models.Identity, name, description string, image *models.ImageUpload) (*models.TopicDB, error) {
	defer removeTemp(image)

	user, err := svc.users.GetByID(ctx, ident.UserID)
	if err != nil {
		svc.log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name == "" || description == "" {
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

	topic, err := svc.writer.Save(ctx, name, description, url, ident.UserID)
	if err != nil {
		svc.log.Errorw("failed to save topic", "err", err)
		return nil, err
	}
	return topic, nil
}

// List returns one page of topics ordered by creation time descending.
func (svc *TopicService) List(ctx context.Context, page int, search string) (*models.TopicsPage, error) {
	page = normalizePage(page)

	topics, total, err := svc.reader.List(ctx, search, (page-1)*PageSize, PageSize)
	if err != nil {
		svc.log.Errorw("failed to list topics", "err", err)
		return nil, err
	}

	return &models.TopicsPage{
		CurrentPage: page,
		TotalPages:  totalPages(total),
		TotalItems:  total,
		PerPage:     PageSize,
		Data:        topics,
	}, nil
}

// Get returns a single topic with its posts.
func (svc *TopicService) Get(ctx context.Context, id uuid.UUID) (*models.TopicDB, error) {
	topic, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get topic", "err", err)
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	return topic, nil
}

// Update re-validates everything Create validates, enforces ownership and
// replaces the stored image with a freshly uploaded one. The previous remote
// image is left in place.
func (svc *TopicService) Update(ctx context.Context, ident models.Identity, id uuid.UUID, name, description string, image *models.ImageUpload) (*models.TopicDB, error) {
	defer removeTemp(image)

	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get topic", "err", err)
		return nil, err
	}
	if existing == nil || existing.UserID != ident.UserID {
		return nil, ErrTopicNotOwned
	}

	if name == "" || description == "" {
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

	topic, err := svc.writer.Update(ctx, id, name, description, url)
	if err != nil {
		svc.log.Errorw("failed to update topic", "err", err)
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	topic.Posts = existing.Posts
	return topic, nil
}

// Delete removes a topic after an existence check. Ownership is deliberately
// not checked on delete.
func (svc *TopicService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get topic", "err", err)
		return err
	}
	if existing == nil {
		return ErrTopicNotFound
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		svc.log.Errorw("failed to delete topic", "err", err)
		return err
	}
	return nil
}
