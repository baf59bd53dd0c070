package memory

import (
	"context"
	"errors"
	"sync"

	"studyquiz/internal/store"
)

// Storage keeps sessions in a map guarded by a RWMutex.
type Storage struct {
	mu       sync.RWMutex
	sessions map[string]store.Session
}

func NewStorage() *Storage { return &Storage{sessions: make(map[string]store.Session)} }

func (s *Storage) Save(_ context.Context, sess store.Session) error {
	if sess.ID == "" {
		return errors.New("session id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *Storage) Get(_ context.Context, id string) (store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return store.Session{}, store.ErrNotFound
	}
	return sess, nil
}

func (s *Storage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Storage) Close() error { return nil }
