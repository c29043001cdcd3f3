package models

import (
	"time"

	"github.com/google/uuid"
)

// TipDB represents a tip record in the database.
type TipDB struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TipsPage is one page of tips with paging metadata.
type TipsPage struct {
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalItems  int64   `json:"totalItems"`
	PerPage     int     `json:"perPage"`
	Data        []TipDB `json:"data"`
}
