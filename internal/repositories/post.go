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

// PostReadRepository handles post read operations.
type PostReadRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPostReadRepository(db *sqlx.DB, log *zap.SugaredLogger) *PostReadRepository {
	return &PostReadRepository{db: db, log: log}
}

// GetByID returns the post with its parent topic name, or nil when absent.
func (r *PostReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PostDB, error) {
	const query = `
		SELECT p.id, p.title, p.slug, p.content, p.image, p.topic_id,
		       t.name AS topic_name, p.created_at, p.updated_at
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE p.id = $1
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, id)

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
	return &post, nil
}

// List returns one page of posts ordered by creation time descending,
// together with the total count matching the search filter. The search term
// matches title or content case-insensitively.
func (r *PostReadRepository) List(ctx context.Context, search string, offset, limit int) ([]models.PostDB, int64, error) {
	const query = `
		SELECT p.id, p.title, p.slug, p.content, p.image, p.topic_id,
		       t.name AS topic_name, p.created_at, p.updated_at
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%' OR p.content ILIKE '%' || $1 || '%')
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`
	const countQuery = `
		SELECT COUNT(*)
		FROM posts p
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%' OR p.content ILIKE '%' || $1 || '%')
	`

	posts := []models.PostDB{}
	err := r.db.SelectContext(ctx, &posts, query, search, limit, offset)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{search, limit, offset},
		"rows", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, search); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// PostWriteRepository handles post write operations.
type PostWriteRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewPostWriteRepository(db *sqlx.DB, log *zap.SugaredLogger) *PostWriteRepository {
	return &PostWriteRepository{db: db, log: log}
}

// Save inserts a new post and returns it with the parent topic name joined.
// A missing topic surfaces as a foreign key violation from the store.
func (r *PostWriteRepository) Save(ctx context.Context, title, slug, content, image string, topicID uuid.UUID) (*models.PostDB, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO posts (title, slug, content, image, topic_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, title, slug, content, image, topic_id, created_at, updated_at
		)
		SELECT i.id, i.title, i.slug, i.content, i.image, i.topic_id,
		       t.name AS topic_name, i.created_at, i.updated_at
		FROM inserted i
		JOIN topics t ON t.id = i.topic_id
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, title, slug, content, image, topicID)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{title, slug, topicID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update rewrites the mutable post fields. Returns nil when the row is gone.
func (r *PostWriteRepository) Update(ctx context.Context, id uuid.UUID, title, slug, content, image string, topicID uuid.UUID) (*models.PostDB, error) {
	const query = `
		WITH updated AS (
			UPDATE posts
			SET title = $2, slug = $3, content = $4, image = $5, topic_id = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, slug, content, image, topic_id, created_at, updated_at
		)
		SELECT u.id, u.title, u.slug, u.content, u.image, u.topic_id,
		       t.name AS topic_name, u.created_at, u.updated_at
		FROM updated u
		JOIN topics t ON t.id = u.topic_id
	`

	var post models.PostDB
	err := r.db.GetContext(ctx, &post, query, id, title, slug, content, image, topicID)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, title, slug, topicID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post row.
func (r *PostWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM posts WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)

	r.log.Debugw("query executed", "query", query, "args", []any{id}, "error", err)

	return err
}
