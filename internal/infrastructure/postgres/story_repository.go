package postgres

import (
	"context"
	"errors"

	domain "storyhub/backend/internal/domain/story"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StoryRepository persists stories in PostgreSQL.
type StoryRepository struct {
	pool *pgxpool.Pool
}

// NewStoryRepository constructs a repository.
func NewStoryRepository(pool *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{pool: pool}
}

// Create inserts a new story.
func (r *StoryRepository) Create(ctx context.Context, story *domain.Story) error {
	const query = `
INSERT INTO stories (id, username, title, category, prompt, body, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.pool.Exec(ctx, query,
		story.ID,
		story.Username,
		story.Title,
		story.Category,
		story.Prompt,
		story.Body,
		story.CreatedAt,
		story.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTitle
		}
		return err
	}
	return nil
}

// GetByID fetches a story by id.
func (r *StoryRepository) GetByID(ctx context.Context, id string) (*domain.Story, error) {
	const query = `
SELECT id, username, title, category, prompt, body, created_at, updated_at
FROM stories WHERE id = $1
`
	row := r.pool.QueryRow(ctx, query, id)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return story, nil
}

// GetByTitle fetches a story using its title.
func (r *StoryRepository) GetByTitle(ctx context.Context, title string) (*domain.Story, error) {
	const query = `
SELECT id, username, title, category, prompt, body, created_at, updated_at
FROM stories WHERE title = $1
`
	row := r.pool.QueryRow(ctx, query, title)
	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return story, nil
}

// ListByUsername returns the owner's stories, newest first.
func (r *StoryRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Story, error) {
	const query = `
SELECT id, username, title, category, prompt, body, created_at, updated_at
FROM stories
WHERE username = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*domain.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

// Update writes story updates to the database.
func (r *StoryRepository) Update(ctx context.Context, story *domain.Story) error {
	const query = `
UPDATE stories
SET body = $2,
    updated_at = $3
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, query,
		story.ID,
		story.Body,
		story.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a story by id.
func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM stories WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStory(row pgx.Row) (*domain.Story, error) {
	var s domain.Story
	err := row.Scan(
		&s.ID,
		&s.Username,
		&s.Title,
		&s.Category,
		&s.Prompt,
		&s.Body,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
