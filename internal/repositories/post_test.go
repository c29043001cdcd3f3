package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/devfolio/devfolio-api/internal/models"
)

func seedTopic(t *testing.T, db *sqlx.DB) *models.TopicDB {
	t.Helper()
	user := seedUser(t, db, "alice", "alice@example.com")
	topic, err := NewTopicWriteRepository(db, testLogger()).Save(context.Background(), "Go", "desc", "img", user.ID)
	assert.NoError(t, err)
	return topic
}

func TestPostRepository_SaveAndGet(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	topic := seedTopic(t, db)
	writeRepo := NewPostWriteRepository(db, testLogger())
	readRepo := NewPostReadRepository(db, testLogger())

	post, err := writeRepo.Save(ctx, "Hello, World!", "hello-world", "body", "img.png", topic.ID)
	assert.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "Go", post.Topic)

	got, err := readRepo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Hello, World!", got.Title)
	assert.Equal(t, "Go", got.Topic)

	missing, err := readRepo.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostWriteRepository_SaveWithoutTopicFails(t *testing.T) {
	db := setupPostgres(t)

	_, err := NewPostWriteRepository(db, testLogger()).
		Save(context.Background(), "Orphan", "orphan", "body", "img", uuid.New())
	assert.Error(t, err)
}

func TestPostReadRepository_List(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	topic := seedTopic(t, db)
	writeRepo := NewPostWriteRepository(db, testLogger())

	_, err := writeRepo.Save(ctx, "Generics in Go", "generics-in-go", "type parameters", "img", topic.ID)
	assert.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = writeRepo.Save(ctx, "Channels", "channels", "goroutine plumbing", "img", topic.ID)
	assert.NoError(t, err)

	readRepo := NewPostReadRepository(db, testLogger())

	t.Run("newest first with topic name", func(t *testing.T) {
		posts, total, err := readRepo.List(ctx, "", 0, 6)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, "Channels", posts[0].Title)
		assert.Equal(t, "Go", posts[0].Topic)
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		posts, total, err := readRepo.List(ctx, "GENERICS", 0, 6)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Generics in Go", posts[0].Title)
	})

	t.Run("search matches content", func(t *testing.T) {
		posts, total, err := readRepo.List(ctx, "plumbing", 0, 6)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Channels", posts[0].Title)
	})
}

func TestPostWriteRepository_Update(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	topic := seedTopic(t, db)
	writeRepo := NewPostWriteRepository(db, testLogger())

	post, err := writeRepo.Save(ctx, "Old Title", "old-title", "body", "img", topic.ID)
	assert.NoError(t, err)

	updated, err := writeRepo.Update(ctx, post.ID, "New Title", "new-title", "fresh body", "new.png", topic.ID)
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, "Go", updated.Topic)

	gone, err := writeRepo.Update(ctx, uuid.New(), "x", "x", "x", "x", topic.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostWriteRepository_Delete(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	topic := seedTopic(t, db)
	writeRepo := NewPostWriteRepository(db, testLogger())
	readRepo := NewPostReadRepository(db, testLogger())

	post, err := writeRepo.Save(ctx, "Doomed", "doomed", "body", "img", topic.ID)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.Delete(ctx, post.ID))

	got, err := readRepo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
