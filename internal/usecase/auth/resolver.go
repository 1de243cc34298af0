package auth

import (
	"context"
	"errors"

	domain "storyhub/backend/internal/domain/auth"
)

// Resolver turns an inbound bearer token into an authorized user. Token
// integrity and expiry are checked before any storage lookup, so forged or
// stale tokens are rejected without touching the repository.
type Resolver struct {
	tokens TokenManager
	users  domain.UserRepository
}

// NewResolver constructs a resolver.
func NewResolver(tokens TokenManager, users domain.UserRepository) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve validates the token, loads its subject, and enforces account
// state. A token whose subject no longer exists is reported as invalid; the
// caller cannot tell a deleted account from a forged token.
func (r *Resolver) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	username, err := r.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	if user.Disabled {
		return nil, domain.ErrUserDisabled
	}

	return sanitizeUser(user), nil
}
