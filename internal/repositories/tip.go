package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/models"
)

// TipReadRepository handles tip read operations.
type TipReadRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewTipReadRepository(db *sqlx.DB, log *zap.SugaredLogger) *TipReadRepository {
	return &TipReadRepository{db: db, log: log}
}

// GetByID returns the tip, or nil when absent.
func (r *TipReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TipDB, error) {
	const query = `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM tips
		WHERE id = $1
	`

	var tip models.TipDB
	err := r.db.GetContext(ctx, &tip, query, id)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// List returns one page of tips ordered by creation time descending,
// together with the total count matching the search filter. The search term
// matches title or description case-insensitively.
func (r *TipReadRepository) List(ctx context.Context, search string, offset, limit int) ([]models.TipDB, int64, error) {
	const query = `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM tips
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	const countQuery = `
		SELECT COUNT(*)
		FROM tips
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
	`

	tips := []models.TipDB{}
	err := r.db.SelectContext(ctx, &tips, query, search, limit, offset)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{search, limit, offset},
		"rows", len(tips),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, search); err != nil {
		return nil, 0, err
	}

	return tips, total, nil
}

// TipWriteRepository handles tip write operations.
type TipWriteRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewTipWriteRepository(db *sqlx.DB, log *zap.SugaredLogger) *TipWriteRepository {
	return &TipWriteRepository{db: db, log: log}
}

// Save inserts a new tip owned by the given user.
func (r *TipWriteRepository) Save(ctx context.Context, title, description string, userID uuid.UUID) (*models.TipDB, error) {
	const query = `
		INSERT INTO tips (title, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, title, description, user_id, created_at, updated_at
	`

	var tip models.TipDB
	err := r.db.GetContext(ctx, &tip, query, title, description, userID)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{title, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// Update rewrites the mutable tip fields. Returns nil when the row is gone.
func (r *TipWriteRepository) Update(ctx context.Context, id uuid.UUID, title, description string) (*models.TipDB, error) {
	const query = `
		UPDATE tips
		SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, user_id, created_at, updated_at
	`

	var tip models.TipDB
	err := r.db.GetContext(ctx, &tip, query, id, title, description)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, title},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// Delete removes the tip row.
func (r *TipWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tips WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)

	r.log.Debugw("query executed", "query", query, "args", []any{id}, "error", err)

	return err
}
