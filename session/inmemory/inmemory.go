package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/peopleops/hrdesk/models"
	"github.com/peopleops/hrdesk/session"
)

// Store is an in-process session.Store used for tests and local development.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*entry
}

type entry struct {
	messages  []models.ChatMessage
	expiresAt time.Time
}

func New(ttl time.Duration) *Store {
	return &Store{ttl: ttl, sessions: make(map[string]*entry)}
}

var _ session.Store = (*Store)(nil)

func (s *Store) Append(ctx context.Context, sessionID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok || s.expired(e) {
		e = &entry{}
		s.sessions[sessionID] = e
	}
	e.messages = append(e.messages, msg)
	e.expiresAt = time.Now().Add(s.ttl)
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok || s.expired(e) {
		return nil, nil
	}
	out := make([]models.ChatMessage, len(e.messages))
	copy(out, e.messages)
	return out, nil
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok || s.expired(e) {
		delete(s.sessions, sessionID)
		return models.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && time.Now().After(e.expiresAt)
}
