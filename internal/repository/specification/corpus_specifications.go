package specification

import "gorm.io/gorm"

type BySource struct {
	Source string
}

func (s BySource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source = ?", s.Source)
}

type ByDocKey struct {
	DocKey string
}

func (s ByDocKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doc_key = ?", s.DocKey)
}
