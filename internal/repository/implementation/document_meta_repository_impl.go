package implementation

import (
	"context"
	"errors"

	"dec-assist-be/internal/entity"
	"dec-assist-be/internal/mapper"
	"dec-assist-be/internal/model"
	"dec-assist-be/internal/repository/contract"
	"dec-assist-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentMetaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusMapper
}

func NewDocumentMetaRepository(db *gorm.DB) contract.DocumentMetaRepository {
	return &DocumentMetaRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusMapper(),
	}
}

func (r *DocumentMetaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentMetaRepositoryImpl) Create(ctx context.Context, meta *entity.DocumentMeta) error {
	m := r.mapper.MetaToModel(meta)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*meta = *r.mapper.MetaToEntity(m)
	return nil
}

func (r *DocumentMetaRepositoryImpl) CreateBulk(ctx context.Context, metas []*entity.DocumentMeta) error {
	if len(metas) == 0 {
		return nil
	}
	models := make([]*model.DocumentMeta, len(metas))
	for i, e := range metas {
		models[i] = r.mapper.MetaToModel(e)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 500).Error
}

func (r *DocumentMetaRepositoryImpl) Upsert(ctx context.Context, meta *entity.DocumentMeta) error {
	m := r.mapper.MetaToModel(meta)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "permalink", "extras"}),
		}).
		Create(m).Error
}

func (r *DocumentMetaRepositoryImpl) FindByKey(ctx context.Context, docKey string) (*entity.DocumentMeta, error) {
	var m model.DocumentMeta
	err := r.db.WithContext(ctx).Where("doc_key = ?", docKey).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MetaToEntity(&m), nil
}

func (r *DocumentMetaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentMeta, error) {
	var models []*model.DocumentMeta
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.DocumentMeta, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MetaToEntity(m)
	}
	return entities, nil
}

func (r *DocumentMetaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.DocumentMeta{}).Count(&count).Error
	return count, err
}
