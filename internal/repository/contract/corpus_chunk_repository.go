package contract

import (
	"context"

	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CorpusChunkRepository interface {
	Create(ctx context.Context, chunk *entity.CorpusChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySource(ctx context.Context, source string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CorpusChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the chunks nearest to the query embedding by
	// pgvector cosine distance.
	SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]*entity.CorpusChunk, error)
}
