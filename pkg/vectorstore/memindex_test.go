package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dec-assist-be/pkg/store"
)

func TestMemIndexSearchRanksByCosineSimilarity(t *testing.T) {
	idx := NewMemIndex()

	assert.NoError(t, idx.Add(store.DocumentChunk{Content: "east", Source: "doc.pdf"}, []float32{1, 0}))
	assert.NoError(t, idx.Add(store.DocumentChunk{Content: "north", Source: "doc.pdf"}, []float32{0, 1}))
	assert.NoError(t, idx.Add(store.DocumentChunk{Content: "northeast", Source: "doc.pdf"}, []float32{1, 1}))

	got, err := idx.Search([]float32{1, 0.1}, 2)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "east", got[0].Content)
	assert.Equal(t, "northeast", got[1].Content)
}

func TestMemIndexSearchEmptyIndex(t *testing.T) {
	idx := NewMemIndex()

	got, err := idx.Search([]float32{1, 0}, 5)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemIndexDimensionMismatch(t *testing.T) {
	idx := NewMemIndex()
	assert.NoError(t, idx.Add(store.DocumentChunk{Content: "a", Source: "s"}, []float32{1, 0, 0}))

	err := idx.Add(store.DocumentChunk{Content: "b", Source: "s"}, []float32{1, 0})
	assert.Error(t, err)

	_, err = idx.Search([]float32{1, 0}, 5)
	assert.Error(t, err)
}

func TestMemIndexRejectsEmptyVectors(t *testing.T) {
	idx := NewMemIndex()

	assert.Error(t, idx.Add(store.DocumentChunk{Content: "a", Source: "s"}, nil))

	_, err := idx.Search(nil, 5)
	assert.Error(t, err)
}

func TestMemIndexSize(t *testing.T) {
	idx := NewMemIndex()
	assert.Zero(t, idx.Size())

	assert.NoError(t, idx.Add(store.DocumentChunk{Content: "a", Source: "s"}, []float32{1}))
	assert.Equal(t, 1, idx.Size())
}
