package story

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a story could not be located.
	ErrNotFound = errors.New("story not found")
	// ErrDuplicateTitle signals title uniqueness constraint breaches.
	ErrDuplicateTitle = errors.New("story with title already exists")
)

// Story captures a generated story owned by a user.
type Story struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Prompt    string    `json:"prompt"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
