// Package session keeps the per-browser hub sessions, keyed by the cookie token.
// Sessions are ephemeral: the stores are TTL caches, never durable storage.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"github.com/dukex/projecthub/pkg/models"
)

var ErrNotFound = errors.New("session not found")

// Store hands out copies of sessions. Save replaces a session whole.
type Store interface {
	Create(ctx context.Context) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, id string) error
	// Sweep removes expired sessions and returns how many were dropped.
	Sweep(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// NewToken returns a random URL-safe session token.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
