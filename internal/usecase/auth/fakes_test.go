package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	domain "storyhub/backend/internal/domain/auth"
)

// memRepo is an in-memory UserRepository. Like the real store it enforces
// username uniqueness atomically, so racing Create calls have one winner.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*domain.User)}
}

func (r *memRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *memRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

func (r *memRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		copy := *user
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID(user.ID)
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.Disabled = user.Disabled
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *memRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.PasswordHash = passwordHash
	stored.UpdatedAt = updatedAt
	return nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, user := range r.users {
		if user.ID == id {
			delete(r.users, username)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *memRepo) byID(id string) (*domain.User, bool) {
	for _, user := range r.users {
		if user.ID == id {
			return user, true
		}
	}
	return nil, false
}

// setDisabled flips the stored account flag, standing in for an
// administrative action.
func (r *memRepo) setDisabled(username string, disabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[username]; ok {
		user.Disabled = disabled
	}
}

// plainHasher is a transparent PasswordHasher for tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubTokens is a TokenManager whose tokens carry the username in clear.
type stubTokens struct {
	generateErr error
	validateErr error
}

func (s *stubTokens) Generate(username string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}
	return "tok:" + username, nil
}

func (s *stubTokens) Validate(token string) (string, error) {
	if s.validateErr != nil {
		return "", s.validateErr
	}
	username, ok := strings.CutPrefix(token, "tok:")
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	return username, nil
}
