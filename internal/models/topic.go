package models

import (
	"time"

	"github.com/google/uuid"
)

// TopicDB represents a topic record with its posts joined for display.
type TopicDB struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Posts under this topic, populated by the read repository.
	Posts []TopicPost `json:"posts"`
}

// TopicPost is the subset of a post embedded in topic responses.
type TopicPost struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Image     string    `json:"image" db:"image"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TopicsPage is one page of topics with paging metadata.
type TopicsPage struct {
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
	TotalItems  int64     `json:"totalItems"`
	PerPage     int       `json:"perPage"`
	Data        []TopicDB `json:"data"`
}
