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

// TopicReadRepository handles topic read operations.
type TopicReadRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewTopicReadRepository(db *sqlx.DB, log *zap.SugaredLogger) *TopicReadRepository {
	return &TopicReadRepository{db: db, log: log}
}

// GetByID returns the topic with its posts joined, or nil when absent.
func (r *TopicReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TopicDB, error) {
	const query = `
		SELECT id, name, description, image, user_id, created_at, updated_at
		FROM topics
		WHERE id = $1
	`

	var topic models.TopicDB
	err := r.db.GetContext(ctx, &topic, query, id)

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

	posts, err := r.postsForTopics(ctx, []uuid.UUID{topic.ID})
	if err != nil {
		return nil, err
	}
	topic.Posts = posts[topic.ID]
	if topic.Posts == nil {
		topic.Posts = []models.TopicPost{}
	}
	return &topic, nil
}

// List returns one page of topics ordered by creation time descending,
// together with the total count matching the search filter. The search term
// matches name or description case-insensitively.
func (r *TopicReadRepository) List(ctx context.Context, search string, offset, limit int) ([]models.TopicDB, int64, error) {
	const query = `
		SELECT id, name, description, image, user_id, created_at, updated_at
		FROM topics
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	const countQuery = `
		SELECT COUNT(*)
		FROM topics
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
	`

	topics := []models.TopicDB{}
	err := r.db.SelectContext(ctx, &topics, query, search, limit, offset)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{search, limit, offset},
		"rows", len(topics),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, search); err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	posts, err := r.postsForTopics(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range topics {
		topics[i].Posts = posts[topics[i].ID]
		if topics[i].Posts == nil {
			topics[i].Posts = []models.TopicPost{}
		}
	}

	return topics, total, nil
}

// topicPostRow carries the grouping key alongside the embedded display fields.
type topicPostRow struct {
	models.TopicPost
	TopicID uuid.UUID `db:"topic_id"`
}

func (r *TopicReadRepository) postsForTopics(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]models.TopicPost, error) {
	if len(ids) == 0 {
		return map[uuid.UUID][]models.TopicPost{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, title, image, content, topic_id, created_at, updated_at
		FROM posts
		WHERE topic_id IN (?)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []topicPostRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]models.TopicPost, len(ids))
	for _, row := range rows {
		grouped[row.TopicID] = append(grouped[row.TopicID], row.TopicPost)
	}
	return grouped, nil
}

// TopicWriteRepository handles topic write operations.
type TopicWriteRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func NewTopicWriteRepository(db *sqlx.DB, log *zap.SugaredLogger) *TopicWriteRepository {
	return &TopicWriteRepository{db: db, log: log}
}

// Save inserts a new topic owned by the given user.
func (r *TopicWriteRepository) Save(ctx context.Context, name, description, image string, userID uuid.UUID) (*models.TopicDB, error) {
	const query = `
		INSERT INTO topics (name, description, image, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, name, description, image, user_id, created_at, updated_at
	`

	var topic models.TopicDB
	err := r.db.GetContext(ctx, &topic, query, name, description, image, userID)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	topic.Posts = []models.TopicPost{}
	return &topic, nil
}

// Update rewrites the mutable topic fields. Returns nil when the row is gone.
func (r *TopicWriteRepository) Update(ctx context.Context, id uuid.UUID, name, description, image string) (*models.TopicDB, error) {
	const query = `
		UPDATE topics
		SET name = $2, description = $3, image = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, image, user_id, created_at, updated_at
	`

	var topic models.TopicDB
	err := r.db.GetContext(ctx, &topic, query, id, name, description, image)

	r.log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, name},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Delete removes the topic row. Posts are not cascaded; a topic that still
// has posts fails with a foreign key violation from the store.
func (r *TopicWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM topics WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)

	r.log.Debugw("query executed", "query", query, "args", []any{id}, "error", err)

	return err
}
