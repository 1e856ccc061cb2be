package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/vectorstore"
)

func TestConversationMemoryAppendAndGet(t *testing.T) {
	m := NewConversationMemory()

	m.Append("s1", "first")
	m.Append("s1", "second")
	m.Append("s2", "other session")

	assert.Equal(t, []string{"first", "second"}, m.Get("s1"))
	assert.Equal(t, []string{"other session"}, m.Get("s2"))
	assert.Empty(t, m.Get("unknown"))
}

func TestConversationMemoryEvictsOldestBlock(t *testing.T) {
	m := NewConversationMemory()

	for i := 0; i < conversationCap+1; i++ {
		m.Append("s1", fmt.Sprintf("q%d", i))
	}

	// Exceeding the cap drops the oldest block in one piece.
	got := m.Get("s1")
	assert.Len(t, got, conversationCap+1-conversationEvictBlock)
	assert.Equal(t, "q4", got[0])
	assert.Equal(t, "q10", got[len(got)-1])
}

func TestConversationMemoryGetReturnsCopy(t *testing.T) {
	m := NewConversationMemory()
	m.Append("s1", "original")

	got := m.Get("s1")
	got[0] = "mutated"

	assert.Equal(t, []string{"original"}, m.Get("s1"))
}

func TestConversationMemoryDelete(t *testing.T) {
	m := NewConversationMemory()
	m.Append("s1", "q")

	m.Delete("s1")

	assert.Zero(t, m.Len("s1"))
}

func TestSessionIndexStoreFIFOEviction(t *testing.T) {
	s := NewSessionIndexStore()

	for i := 0; i < sessionIndexCap+2; i++ {
		s.Put(fmt.Sprintf("s%d", i), vectorstore.NewMemIndex())
	}

	assert.Equal(t, sessionIndexCap, s.Len())
	_, found := s.Get("s0")
	assert.False(t, found)
	_, found = s.Get("s1")
	assert.False(t, found)
	_, found = s.Get("s2")
	assert.True(t, found)
}

func TestSessionIndexStoreGetDoesNotRefreshPriority(t *testing.T) {
	s := NewSessionIndexStore()

	for i := 0; i < sessionIndexCap; i++ {
		s.Put(fmt.Sprintf("s%d", i), vectorstore.NewMemIndex())
	}

	// Reading the oldest entry must not save it from eviction.
	s.Get("s0")
	s.Put("new", vectorstore.NewMemIndex())

	_, found := s.Get("s0")
	assert.False(t, found)
}

func TestSessionIndexStoreReplaceKeepsPosition(t *testing.T) {
	s := NewSessionIndexStore()

	s.Put("a", vectorstore.NewMemIndex())
	s.Put("b", vectorstore.NewMemIndex())
	// Re-putting "a" keeps its original insertion position.
	s.Put("a", vectorstore.NewMemIndex())

	for i := 0; i < sessionIndexCap-1; i++ {
		s.Put(fmt.Sprintf("s%d", i), vectorstore.NewMemIndex())
	}

	_, foundA := s.Get("a")
	_, foundB := s.Get("b")
	assert.False(t, foundA)
	assert.True(t, foundB)
}

func TestSessionIndexStoreDelete(t *testing.T) {
	s := NewSessionIndexStore()
	s.Put("a", vectorstore.NewMemIndex())

	s.Delete("a")
	s.Delete("missing")

	assert.Zero(t, s.Len())
}

func TestKeyedLockSerializesSameKey(t *testing.T) {
	l := NewKeyedLock()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("session-1")
			counter++
			l.Unlock("session-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
