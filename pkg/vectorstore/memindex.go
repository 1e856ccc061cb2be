package vectorstore

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"dec-assist-be/pkg/store"
)

// MemIndex is a brute-force in-memory vector index. It backs the ephemeral
// per-session indices built from user uploads: small enough that exhaustive
// cosine scoring beats anything fancier, and it dies with the process by
// design.
type MemIndex struct {
	mu      sync.RWMutex
	entries []indexEntry
}

type indexEntry struct {
	chunk  store.DocumentChunk
	vector []float32
	norm   float64
}

func NewMemIndex() *MemIndex {
	return &MemIndex{}
}

// Add appends an embedded chunk to the index. The vector dimension must match
// previously added entries.
func (m *MemIndex) Add(chunk store.DocumentChunk, vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty embedding vector")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) > 0 && len(m.entries[0].vector) != len(vector) {
		return fmt.Errorf("embedding dimension mismatch: index has %d, got %d",
			len(m.entries[0].vector), len(vector))
	}

	m.entries = append(m.entries, indexEntry{
		chunk:  chunk,
		vector: vector,
		norm:   vectorNorm(vector),
	})
	return nil
}

// Search returns up to k passages ordered by descending cosine similarity to
// the query vector.
func (m *MemIndex) Search(query []float32, k int) ([]store.Passage, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil, nil
	}
	if len(m.entries[0].vector) != len(query) {
		return nil, fmt.Errorf("query dimension mismatch: index has %d, got %d",
			len(m.entries[0].vector), len(query))
	}

	queryNorm := vectorNorm(query)
	if queryNorm == 0 {
		return nil, fmt.Errorf("zero-magnitude query vector")
	}

	type scored struct {
		passage store.Passage
		score   float64
	}
	results := make([]scored, 0, len(m.entries))
	for _, e := range m.entries {
		if e.norm == 0 {
			continue
		}
		var dot float64
		for i := range query {
			dot += float64(query[i]) * float64(e.vector[i])
		}
		results = append(results, scored{
			passage: store.Passage{Content: e.chunk.Content, Source: e.chunk.Source},
			score:   dot / (queryNorm * e.norm),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}

	passages := make([]store.Passage, len(results))
	for i, r := range results {
		passages[i] = r.passage
	}
	return passages, nil
}

// Size reports the number of indexed chunks.
func (m *MemIndex) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func vectorNorm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
