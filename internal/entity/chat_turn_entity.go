package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one completed question/answer exchange. Sources and
// SuggestiveQuestion hold their lists joined with blank lines, matching the
// persisted wire format.
type ChatTurn struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	ChatSessionId      uuid.UUID
	Agent              string
	Message            string
	Response           string
	Sources            string
	SuggestiveQuestion string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	DeletedAt          *time.Time
	IsDeleted          bool
}
