package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// OrderByCreatedAtAsc orders rows oldest first, the display order for chat
// history.
type OrderByCreatedAtAsc struct{}

func (s OrderByCreatedAtAsc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
