package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure. Unknown usernames and
	// wrong passwords both map here so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUsernameTaken signals a duplicate username registration.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrTokenInvalid means a supplied token is malformed or its signature
	// does not verify.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired means a well-formed token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrUserNotFound indicates a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserDisabled indicates the account exists but has been disabled.
	ErrUserDisabled = errors.New("user account disabled")
)

// User models the authentication principal persisted in storage. The
// username is the unique key and the token subject; it never changes after
// registration.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	Disabled     bool      `json:"disabled"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Username string
	Password string
}
