package auth

// TokenManager abstracts token issuance and verification. Generate embeds
// the username as the token subject; Validate returns it when the token is
// intact and unexpired.
type TokenManager interface {
	Generate(username string) (string, error)
	Validate(token string) (string, error)
}
