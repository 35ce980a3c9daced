package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukex/projecthub/pkg/log"
	"github.com/dukex/projecthub/pkg/models"
)

type entry struct {
	session   *models.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Every access slides the expiry.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  map[string]entry
	now    func() time.Time
	logger *slog.Logger
}

func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		items:  make(map[string]entry),
		now:    time.Now,
		logger: log.Named(logger, "session_store"),
	}
}

// WithClock replaces the store clock; used by tests to expire sessions.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now

	return s
}

func (s *MemoryStore) Create(ctx context.Context) (*models.Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}

	sess := models.NewSession(token)

	s.mu.Lock()
	s.items[token] = entry{session: sess.Clone(), expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session created")

	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.After(item.expiresAt) {
		delete(s.items, id)
		s.logger.DebugContext(ctx, "session expired")

		return nil, ErrNotFound
	}

	item.expiresAt = now.Add(s.ttl)
	s.items[id] = item

	return item.session.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sess.ID] = entry{session: sess.Clone(), expiresAt: s.now().Add(s.ttl)}

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)

	return nil
}

func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()

	now := s.now()
	removed := 0

	for id, item := range s.items {
		if now.After(item.expiresAt) {
			delete(s.items, id)
			removed++
		}
	}

	s.mu.Unlock()

	if removed > 0 {
		s.logger.InfoContext(ctx, "expired sessions swept", "count", removed)
	}

	return removed, nil
}

// Len is the number of sessions currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *MemoryStore) HealthCheck(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
