package hash

import (
	usecase "storyhub/backend/internal/usecase/auth"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with a tunable work factor. Each call salts
// internally, so equal inputs produce distinct hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt constructs a hasher with the provided cost, falling back to the
// bcrypt default when the cost is out of range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Ensure Bcrypt implements the PasswordHasher interface.
var _ usecase.PasswordHasher = (*Bcrypt)(nil)

// Hash generates a salted one-way hash of the password.
func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches the stored hash. The comparison is
// constant time, and a malformed stored hash counts as a mismatch rather
// than an error.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
