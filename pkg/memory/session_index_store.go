package memory

import (
	"sync"

	"dec-assist-be/pkg/vectorstore"
)

// At most this many distinct session indices are held in memory at once.
const sessionIndexCap = 100

// SessionIndexStore maps session identifiers to their ephemeral vector
// indices built from uploaded documents. Eviction is strict FIFO on
// insertion order: once the cap is exceeded the index inserted first is
// dropped, and reading an index does not refresh its position.
type SessionIndexStore struct {
	mu      sync.RWMutex
	indices map[string]*vectorstore.MemIndex
	order   []string // session ids in insertion order, oldest first
}

func NewSessionIndexStore() *SessionIndexStore {
	return &SessionIndexStore{
		indices: make(map[string]*vectorstore.MemIndex),
	}
}

// Get returns the session's index, if one exists. Lookups never change
// eviction priority.
func (s *SessionIndexStore) Get(sessionId string) (*vectorstore.MemIndex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, found := s.indices[sessionId]
	return idx, found
}

// Put registers the session's index. A session already present keeps its
// original insertion position. New insertions beyond the cap evict the
// oldest-inserted session.
func (s *SessionIndexStore) Put(sessionId string, idx *vectorstore.MemIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.indices[sessionId]; !exists {
		s.order = append(s.order, sessionId)
	}
	s.indices[sessionId] = idx

	for len(s.order) > sessionIndexCap {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.indices, oldest)
	}
}

// Delete removes the session's index, if present.
func (s *SessionIndexStore) Delete(sessionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.indices[sessionId]; !exists {
		return
	}
	delete(s.indices, sessionId)
	for i, id := range s.order {
		if id == sessionId {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len reports how many session indices are currently held.
func (s *SessionIndexStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indices)
}
