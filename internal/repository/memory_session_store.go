package repository

import (
	"context"
	"sync"
	"time"

	"github.com/campushq/course-api/internal/models"
)

// MemorySessionStore is an in-process session backing used in tests and
// single-node deployments without Redis. Expiry is checked on read.
type MemorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memorySession
}

type memorySession struct {
	session   models.Session
	expiresAt time.Time
}

// NewMemorySessionStore constructs an in-memory store with the given TTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemorySessionStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

// Create stores the session under its token.
func (s *MemorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = memorySession{session: *session, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Get resolves a token to its session, or nil when absent or expired.
func (s *MemorySessionStore) Get(_ context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, nil
	}
	session := entry.session
	return &session, nil
}

// Delete invalidates a session; absent tokens are ignored.
func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
