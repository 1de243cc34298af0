package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "storyhub/backend/internal/domain/auth"

	"github.com/google/uuid"
)

var (
	// ErrUsernameRequired rejects registration without a username.
	ErrUsernameRequired = errors.New("username is required")
	// ErrPasswordRequired rejects an empty password on registration or update.
	ErrPasswordRequired = errors.New("password is required")
)

// Service coordinates credential workflows between domain and infrastructure.
type Service struct {
	users   domain.UserRepository
	tokens  TokenManager
	hasher  PasswordHasher
	nowFunc func() time.Time
}

// NewService constructs an auth service.
func NewService(users domain.UserRepository, tokens TokenManager, hasher PasswordHasher) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		nowFunc: time.Now,
	}
}

// RegisterInput defines the payload to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// UpdateInput defines the mutable profile fields. The username is the token
// subject and cannot be changed through a profile update.
type UpdateInput struct {
	Email    *string
	FullName *string
	Password *string
}

// Register creates a new user and returns the persisted entity without a
// password hash. Two concurrent registrations of the same username cannot
// both succeed: the repository enforces uniqueness atomically.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))
	password := strings.TrimSpace(input.Password)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		FullName:     strings.TrimSpace(input.FullName),
		Disabled:     false,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login validates credentials and returns a bearer token plus user. Unknown
// usernames and wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	username := strings.TrimSpace(strings.ToLower(creds.Username))
	password := strings.TrimSpace(creds.Password)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeUser(user), nil
}

// List returns all users without password hashes.
func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// UpdateProfile applies profile changes to the already-authorized user. A
// supplied password is re-hashed before persisting.
func (s *Service) UpdateProfile(ctx context.Context, username string, input UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc().UTC()

	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}

	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Password != nil {
		password := strings.TrimSpace(*input.Password)
		if password == "" {
			return nil, ErrPasswordRequired
		}
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePassword(ctx, user.ID, hashed, now); err != nil {
			return nil, err
		}
	}

	return sanitizeUser(user), nil
}

// Delete removes the authorized user's account.
func (s *Service) Delete(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

func sanitizeUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	copy := *u
	copy.PasswordHash = ""
	return &copy
}

func sanitizeUsers(items []*domain.User) []*domain.User {
	out := make([]*domain.User, 0, len(items))
	for _, item := range items {
		out = append(out, sanitizeUser(item))
	}
	return out
}
