package session

import (
	"sync"
	"time"
)

// Store hands out per-user conversation sessions. The user id is an
// opaque key supplied by the auth layer.
type Store interface {
	Ensure(userID string) *Session
	Drop(userID string)
	ExpireIdle(idleTTL time.Duration) int
}

type memoryStore struct {
	mu       sync.RWMutex
	budget   Budget
	sessions map[string]*Session
}

func NewMemoryStore(budget Budget) Store {
	return &memoryStore{
		budget:   budget,
		sessions: make(map[string]*Session),
	}
}

func (s *memoryStore) Ensure(userID string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess = newSession(userID, s.budget)
	s.sessions[userID] = sess
	return sess
}

func (s *memoryStore) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *memoryStore) ExpireIdle(idleTTL time.Duration) int {
	cutoff := time.Now().Add(-idleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
