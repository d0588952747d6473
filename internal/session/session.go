// Package session issues and validates the bearer tokens handed to the
// extension popup after a successful PIN verification.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultMaxAge is how long a session stays valid without a new login.
const DefaultMaxAge = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid session token")

// Manager signs and validates session tokens with an HS256 secret.
type Manager struct {
	secret []byte
	maxAge time.Duration
}

// NewManager creates a Manager. A zero maxAge falls back to DefaultMaxAge.
func NewManager(secret string, maxAge time.Duration) *Manager {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Manager{secret: []byte(secret), maxAge: maxAge}
}

// GenerateSecret returns a random base64 secret for installs that did not
// configure one.
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Issue creates a new session token.
func (m *Manager) Issue() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "blockwarden",
		"sub": "session",
		"iat": now.Unix(),
		"exp": now.Add(m.maxAge).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate checks signature and expiry. It returns ErrInvalidToken for any
// token this manager would not have issued.
func (m *Manager) Validate(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
