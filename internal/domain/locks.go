package domain

import (
	"sync"

	"github.com/google/uuid"
)

// SessionLocks serializes state mutation per session id. The turn
// dispatcher and the ingestion workers share one instance, so their
// load-modify-save sequences on the same session never interleave.
//
// Entries are never evicted: the map holds one mutex per session seen
// by this process, reclaimed only on restart.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Get returns the mutex for id, creating it on first use.
func (s *SessionLocks) Get(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
