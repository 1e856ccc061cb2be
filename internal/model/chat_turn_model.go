package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatTurn struct {
	Id                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChatSessionId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Agent              string         `gorm:"type:text"`
	Message            string         `gorm:"type:text;not null"`
	Response           string         `gorm:"type:text;not null"`
	Sources            string         `gorm:"type:text"`
	SuggestiveQuestion string         `gorm:"type:text"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
