package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusChunk is one embedded slice of a shared-corpus document. Source is
// the file name the chunk came from, citation resolution keys off it.
type CorpusChunk struct {
	Id         uuid.UUID
	Content    string
	Source     string
	ChunkIndex int
	Embedding  []float32
	CreatedAt  time.Time
}
