package auth

// PasswordHasher abstracts one-way password hashing. Verify returns false
// for a wrong password or a malformed stored hash; neither is an error.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
