package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentMeta struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocKey    string         `gorm:"type:text;not null;uniqueIndex"`
	Title     string         `gorm:"type:text;not null"`
	Permalink string         `gorm:"type:text"`
	Extras    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (DocumentMeta) TableName() string {
	return "document_metadata"
}
