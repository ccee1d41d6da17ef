// Package auth provides the credential capabilities of the backend: signing
// and verifying JWT bearer tokens, and hashing and comparing passwords.
// Both are consumed by the auth service and the HTTP auth gate; neither
// knows anything about transport or storage.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification errors. The gate maps these to 401 responses.
var (
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates a malformed token, a bad signature, or an
	// unexpected signing algorithm.
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenManager issues and verifies HMAC-SHA256 signed JWTs whose subject is
// the user ID. It is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewTokenManager returns a TokenManager signing with secret and issuing
// tokens valid for ttl.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign issues a token for userID with the configured lifetime.
func (m *TokenManager) Sign(userID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates token and returns the user ID it was issued
// for. Only HS256 is accepted; any other algorithm fails as invalid.
func (m *TokenManager) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
