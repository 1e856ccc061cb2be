package mapper

import (
	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type CorpusMapper struct{}

func NewCorpusMapper() *CorpusMapper {
	return &CorpusMapper{}
}

func (m *CorpusMapper) ChunkToEntity(c *model.CorpusChunk) *entity.CorpusChunk {
	if c == nil {
		return nil
	}
	return &entity.CorpusChunk{
		Id:         c.Id,
		Content:    c.Content,
		Source:     c.Source,
		ChunkIndex: c.ChunkIndex,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *CorpusMapper) ChunkToModel(c *entity.CorpusChunk) *model.CorpusChunk {
	if c == nil {
		return nil
	}
	return &model.CorpusChunk{
		Id:         c.Id,
		Content:    c.Content,
		Source:     c.Source,
		ChunkIndex: c.ChunkIndex,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *CorpusMapper) MetaToEntity(d *model.DocumentMeta) *entity.DocumentMeta {
	if d == nil {
		return nil
	}
	return &entity.DocumentMeta{
		Id:        d.Id,
		DocKey:    d.DocKey,
		Title:     d.Title,
		Permalink: d.Permalink,
		Extras:    []byte(d.Extras),
		CreatedAt: d.CreatedAt,
	}
}

func (m *CorpusMapper) MetaToModel(d *entity.DocumentMeta) *model.DocumentMeta {
	if d == nil {
		return nil
	}
	return &model.DocumentMeta{
		Id:        d.Id,
		DocKey:    d.DocKey,
		Title:     d.Title,
		Permalink: d.Permalink,
		Extras:    datatypes.JSON(d.Extras),
		CreatedAt: d.CreatedAt,
	}
}
