package auth

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for auth users. Username
// uniqueness is the repository's responsibility: Create must fail with
// ErrUsernameTaken atomically when two callers race on the same name.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
