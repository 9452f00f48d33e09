// Package history provides the in-memory session history store. Sessions
// live for the process lifetime; there is no expiry or eviction, which is a
// known gap for long-running deployments.
package history

import (
	"sync"

	"github.com/satriahrh/mistral-web/domain"
)

// MemoryStore maps session ids to ordered turn slices behind a single
// mutex. The lock is scoped tightly around map access and is never held
// across network calls; callers work on Snapshot copies instead.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]string
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]string),
	}
}

// GetOrCreate ensures an entry exists for the session id.
func (s *MemoryStore) GetOrCreate(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		s.sessions[sessionID] = []string{}
	}
}

// Append adds a turn to the session's history, creating the session when it
// does not exist yet.
func (s *MemoryStore) Append(sessionID string, turn string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], turn)
}

// Snapshot returns a copy of the session's turns in chronological order. An
// unknown session yields an empty slice and creates the entry.
func (s *MemoryStore) Snapshot(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		s.sessions[sessionID] = []string{}
		return []string{}
	}

	snapshot := make([]string, len(turns))
	copy(snapshot, turns)
	return snapshot
}

// SessionCount returns the number of live sessions (useful for monitoring).
func (s *MemoryStore) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

var _ domain.HistoryStore = (*MemoryStore)(nil)
