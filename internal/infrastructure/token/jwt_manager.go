package token

import (
	"errors"
	"time"

	domain "storyhub/backend/internal/domain/auth"
	usecase "storyhub/backend/internal/usecase/auth"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and validates signed bearer tokens. The username travels
// as the subject claim; expiry is enforced against the injected clock so
// tests can simulate time.
type JWTManager struct {
	secret  []byte
	expiry  time.Duration
	issuer  string
	nowFunc func() time.Time
}

// NewJWTManager constructs a manager with the provided secret and expiry.
func NewJWTManager(secret string, expiry time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		secret:  []byte(secret),
		expiry:  expiry,
		issuer:  issuer,
		nowFunc: time.Now,
	}
}

// Ensure JWTManager implements the TokenManager interface.
var _ usecase.TokenManager = (*JWTManager)(nil)

// Generate creates a signed JWT naming the username as subject.
func (m *JWTManager) Generate(username string) (string, error) {
	now := m.nowFunc().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses the token and returns the subject username. The signature
// is verified before any claim is trusted; a valid signature with a past
// expiry yields ErrTokenExpired, every other failure ErrTokenInvalid.
func (m *JWTManager) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.nowFunc() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
