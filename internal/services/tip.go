package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
)

var (
	// ErrTipNotFound is returned when the tip does not exist.
	ErrTipNotFound = errors.New("tip not found")

	// ErrTipNotOwned is returned when the tip is missing or owned by another
	// user. Callers present both cases identically so existence is not
	// leaked to non-owners.
	ErrTipNotOwned = errors.New("tip not found or not owned")
)

// TipReader defines read-only operations for tips.
type TipReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.TipDB, error)
	List(ctx context.Context, search string, offset, limit int) ([]models.TipDB, int64, error)
}

// TipWriter defines write operations for tips.
type TipWriter interface {
	Save(ctx context.Context, title, description string, userID uuid.UUID) (*models.TipDB, error)
	Update(ctx context.Context, id uuid.UUID, title, description string) (*models.TipDB, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TipService handles tip CRUD. Tips carry no image.
type TipService struct {
	reader TipReader
	writer TipWriter
	users  UserReader
	log    *zap.SugaredLogger
}

// NewTipService creates a new TipService instance.
func NewTipService(reader TipReader, writer TipWriter, users UserReader, log *zap.SugaredLogger) *TipService {
	return &TipService{
		reader: reader,
		writer: writer,
		users:  users,
		log:    log,
	}
}

// Create validates fields and persists a tip owned by the caller.
func (svc *TipService) Create(ctx context.Context, ident models.Identity, title, description string) (*models.TipDB, error) {
	user, err := svc.users.GetByID(ctx, ident.UserID)
	if err != nil {
		svc.log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if title == "" || description == "" {
		return nil, ErrAllFieldsRequired
	}

	tip, err := svc.writer.Save(ctx, title, description, ident.UserID)
	if err != nil {
		svc.log.Errorw("failed to save tip", "err", err)
		return nil, err
	}
	return tip, nil
}

// List returns one page of tips ordered by creation time descending.
func (svc *TipService) List(ctx context.Context, page int, search string) (*models.TipsPage, error) {
	page = normalizePage(page)

	tips, total, err := svc.reader.List(ctx, search, (page-1)*PageSize, PageSize)
	if err != nil {
		svc.log.Errorw("failed to list tips", "err", err)
		return nil, err
	}

	return &models.TipsPage{
		CurrentPage: page,
		TotalPages:  totalPages(total),
		TotalItems:  total,
		PerPage:     PageSize,
		Data:        tips,
	}, nil
}

// Get returns a single tip.
func (svc *TipService) Get(ctx context.Context, id uuid.UUID) (*models.TipDB, error) {
	tip, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get tip", "err", err)
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	return tip, nil
}

// Update enforces ownership and rewrites the tip fields.
func (svc *TipService) Update(ctx context.Context, ident models.Identity, id uuid.UUID, title, description string) (*models.TipDB, error) {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get tip", "err", err)
		return nil, err
	}
	if existing == nil || existing.UserID != ident.UserID {
		return nil, ErrTipNotOwned
	}

	if title == "" || description == "" {
		return nil, ErrAllFieldsRequired
	}

	tip, err := svc.writer.Update(ctx, id, title, description)
	if err != nil {
		svc.log.Errorw("failed to update tip", "err", err)
		return nil, err
	}
	if tip == nil {
		return nil, ErrTipNotFound
	}
	return tip, nil
}

// Delete removes a tip after an existence check. Ownership is deliberately
// not checked on delete.
func (svc *TipService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		svc.log.Errorw("failed to get tip", "err", err)
		return err
	}
	if existing == nil {
		return ErrTipNotFound
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		svc.log.Errorw("failed to delete tip", "err", err)
		return err
	}
	return nil
}
