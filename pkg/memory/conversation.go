package memory

import (
	"sync"
)

const (
	// A session's memory holds at most this many reformulated questions.
	conversationCap = 10
	// When the cap is exceeded, this many entries are dropped from the front.
	conversationEvictBlock = 4
)

// ConversationMemory keeps an ordered list of reformulated questions per
// session. Insertion order is meaningful: the most recent question is last.
// The store is process-local and non-durable.
type ConversationMemory struct {
	mu       sync.RWMutex
	sessions map[string][]string
}

func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{
		sessions: make(map[string][]string),
	}
}

// Append adds a reformulated question to the session's history, creating the
// history lazily on first use. When the history grows past the cap, the
// oldest block of entries is evicted in one piece.
func (m *ConversationMemory) Append(sessionId, question string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.sessions[sessionId], question)
	if len(history) > conversationCap {
		history = history[conversationEvictBlock:]
	}
	m.sessions[sessionId] = history
}

// Get returns a copy of the session's history, oldest first. A session with
// no history yields an empty slice.
func (m *ConversationMemory) Get(sessionId string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.sessions[sessionId]
	out := make([]string, len(history))
	copy(out, history)
	return out
}

// Len reports the current history length for a session.
func (m *ConversationMemory) Len(sessionId string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions[sessionId])
}

// Delete drops the session's history entirely.
func (m *ConversationMemory) Delete(sessionId string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionId)
}
