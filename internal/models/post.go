package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDB represents a post record with its parent topic name joined.
type PostDB struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Slug      string    `json:"slug" db:"slug"`
	Content   string    `json:"content" db:"content"`
	Image     string    `json:"image" db:"image"`
	TopicID   uuid.UUID `json:"topicId" db:"topic_id"`
	Topic     string    `json:"topic" db:"topic_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PostsPage is one page of posts with paging metadata.
type PostsPage struct {
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalItems  int64    `json:"totalItems"`
	PerPage     int      `json:"perPage"`
	Data        []PostDB `json:"data"`
}
