package story

import "context"

// Repository defines persistence behaviours for stories.
type Repository interface {
	Create(ctx context.Context, story *Story) error
	GetByID(ctx context.Context, id string) (*Story, error)
	GetByTitle(ctx context.Context, title string) (*Story, error)
	ListByUsername(ctx context.Context, username string) ([]*Story, error)
	Update(ctx context.Context, story *Story) error
	Delete(ctx context.Context, id string) error
}
