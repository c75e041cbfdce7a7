package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps correction sessions in memory, keyed by a random id.
// Every access to a session runs under the store lock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	session  *CorrectionSession
	lastSeen time.Time
}

// NewSessionStore creates a store expiring sessions idle for longer than ttl
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a session and returns its id
func (s *SessionStore) Create(session *CorrectionSession) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.sessions[id] = &sessionEntry{session: session, lastSeen: s.now()}
	return id
}

// Get runs fn with read access to a session
func (s *SessionStore) Get(id uuid.UUID, fn func(*CorrectionSession)) error {
	return s.Update(id, func(session *CorrectionSession) error {
		fn(session)
		return nil
	})
}

// Update runs fn with exclusive access to a session and refreshes its idle timer
func (s *SessionStore) Update(id uuid.UUID, fn func(*CorrectionSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || s.expired(entry, s.now()) {
		delete(s.sessions, id)
		return ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return fn(entry.session)
}

// Delete removes a session
func (s *SessionStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes the sessions idle at now for longer than the ttl
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps expired sessions every interval until ctx is cancelled
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				log.Printf("Expired %d correction sessions", n)
			}
		}
	}
}

func (s *SessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}
