package contract

import (
	"context"

	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/repository/specification"
)

type DocumentMetaRepository interface {
	Create(ctx context.Context, meta *entity.DocumentMeta) error
	CreateBulk(ctx context.Context, metas []*entity.DocumentMeta) error
	Upsert(ctx context.Context, meta *entity.DocumentMeta) error
	FindByKey(ctx context.Context, docKey string) (*entity.DocumentMeta, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentMeta, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
