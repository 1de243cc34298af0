package story

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "storyhub/backend/internal/domain/story"

	"github.com/google/uuid"
)

var (
	// ErrCompletionUnavailable wraps failures of the completion provider so
	// the transport layer can distinguish them from validation errors.
	ErrCompletionUnavailable = errors.New("story completion unavailable")
	// ErrTitleRequired rejects a story without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrCategoryRequired rejects a story without a category.
	ErrCategoryRequired = errors.New("category is required")
)

// Completer generates story text for a prompt. Implementations call an
// external provider and must honour context cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service encapsulates story use cases. All operations are scoped to the
// owning username supplied by the auth layer.
type Service struct {
	repo      domain.Repository
	completer Completer
	nowFunc   func() time.Time
}

// NewService constructs a story service.
func NewService(repo domain.Repository, completer Completer) *Service {
	return &Service{
		repo:      repo,
		completer: completer,
		nowFunc:   time.Now,
	}
}

// CreateInput contains the payload required to generate a story.
type CreateInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Opening  string `json:"opening"`
}

// UpdateInput encapsulates partial story updates.
type UpdateInput struct {
	Body *string `json:"body"`
}

// Create generates and stores a new story for the given owner.
func (s *Service) Create(ctx context.Context, username string, input CreateInput) (*domain.Story, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Category == "" {
		return nil, ErrCategoryRequired
	}

	if _, err := s.repo.GetByTitle(ctx, input.Title); err == nil {
		return nil, domain.ErrDuplicateTitle
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	prompt := buildPrompt(input.Category, input.Opening)
	body, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
	}

	now := s.nowFunc().UTC()
	story := &domain.Story{
		ID:        uuid.NewString(),
		Username:  username,
		Title:     input.Title,
		Category:  input.Category,
		Prompt:    prompt,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// List retrieves the owner's stories.
func (s *Service) List(ctx context.Context, username string) ([]*domain.Story, error) {
	return s.repo.ListByUsername(ctx, username)
}

// Get fetches one of the owner's stories by id.
func (s *Service) Get(ctx context.Context, username, id string) (*domain.Story, error) {
	return s.getOwned(ctx, username, id)
}

// Update replaces the body of one of the owner's stories.
func (s *Service) Update(ctx context.Context, username, id string, input UpdateInput) (*domain.Story, error) {
	story, err := s.getOwned(ctx, username, id)
	if err != nil {
		return nil, err
	}

	if input.Body != nil {
		story.Body = *input.Body
	}
	story.UpdatedAt = s.nowFunc().UTC()

	if err := s.repo.Update(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Delete removes one of the owner's stories.
func (s *Service) Delete(ctx context.Context, username, id string) error {
	story, err := s.getOwned(ctx, username, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, story.ID)
}

// getOwned loads a story and hides other owners' stories as absent.
func (s *Service) getOwned(ctx context.Context, username, id string) (*domain.Story, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("story id is required")
	}
	story, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story.Username != username {
		return nil, domain.ErrNotFound
	}
	return story, nil
}

func buildPrompt(category, opening string) string {
	prompt := fmt.Sprintf("Continue this %s story", category)
	if opening = strings.TrimSpace(opening); opening != "" {
		prompt += ": " + opening
	}
	return prompt
}
