package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("session: no token")

// Claims are the fields the backend puts in its access tokens.
type Claims struct {
	Role string `json:"role"`
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// Email returns the subject, which the backend sets to the user's email.
func (c *Claims) Email() string {
	return c.Subject
}

// Expired reports whether the token expired at or before now. Tokens without an
// expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// ParseClaims decodes a token without checking its signature. The client cannot
// verify tokens; it only reads them for display and expiry hints.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: decode token: %w", err)
	}
	return claims, nil
}

// Claims decodes the current token.
func (m *Manager) Claims() (*Claims, error) {
	token := m.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return ParseClaims(token)
}
