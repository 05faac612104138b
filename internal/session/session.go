// Package session tracks server-side login sessions. Expiry is an explicit
// timestamp comparison on each privileged request: the max lifetime rides in
// the JWT, the idle cutoff is computed from the last recorded activity here.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
)

// Session is one authenticated login.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store records session activity. Implementations: in-process memory
// (default) and Redis for multi-instance deployments.
type Store interface {
	Create(ctx context.Context, userID string, now time.Time) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Touch(ctx context.Context, id string, now time.Time) error
	Revoke(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in a mutex-guarded map.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (s *MemoryStore) Create(ctx context.Context, userID string, now time.Time) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := Session{ID: uuid.NewString(), UserID: userID, StartedAt: now, LastActivity: now}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Touch(ctx context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.LastActivity = now
	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore) Revoke(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
