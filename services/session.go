package services

import (
	"sync"
	"time"

	"whatsapp-bot/models"
)

// SessionStore keeps the per-user quiz state in memory for the lifetime of
// the process. Access is serialized per user: two concurrent messages from
// the same sender resolve one after the other, while different senders never
// contend with each other.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]*sessionEntry),
	}
}

// Update runs fn with exclusive access to the user's session, creating it on
// first contact. The lock is held for the full duration of fn, so callers may
// perform their entire message resolution inside it.
func (s *SessionStore) Update(userID string, fn func(*models.Session)) {
	entry := s.entry(userID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	fn(&entry.session)
	entry.session.LastUpdated = time.Now()
}

// Stage returns the user's current quiz stage without creating a session.
func (s *SessionStore) Stage(userID string) models.QuizStage {
	s.mu.Lock()
	entry, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return models.StageNone
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Stage
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Prune drops sessions that are not mid-quiz and have been idle for longer
// than idleFor. A pruned session is indistinguishable from a fresh one, so
// this only bounds memory. Entries currently held by a resolution are
// skipped. Returns the number of sessions removed.
func (s *SessionStore) Prune(idleFor time.Duration) int {
	cutoff := time.Now().Add(-idleFor)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, entry := range s.entries {
		if !entry.mu.TryLock() {
			continue
		}
		stale := entry.session.Stage == models.StageNone && entry.session.LastUpdated.Before(cutoff)
		entry.mu.Unlock()

		if stale {
			delete(s.entries, userID)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) entry(userID string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[userID]
	if !ok {
		entry = &sessionEntry{
			session: models.Session{
				UserID: userID,
				Stage:  models.StageNone,
			},
		}
		s.entries[userID] = entry
	}
	return entry
}
