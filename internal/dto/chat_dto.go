package dto

import "time"

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
	// Agent optionally pins the expert persona; empty or "none" means
	// automatic routing.
	Agent string `json:"agent"`
}

type SendMessageResponse struct {
	SessionId string `json:"session_id"`
	Agent     string `json:"agent"`
	Response  string `json:"response"`
	// Sources holds catalog titles for documents with metadata; SourceLinks
	// carries their permalinks in the same order. UnresolvedSources lists
	// document keys that had no catalog entry.
	Sources             []string `json:"sources"`
	SourceLinks         []string `json:"source_links"`
	UnresolvedSources   []string `json:"unresolved_sources"`
	SuggestiveQuestions []string `json:"suggestive_questions"`
}

type ChatHistoryTurnResponse struct {
	Id                 string    `json:"id"`
	SessionId          string    `json:"session_id"`
	Agent              string    `json:"agent"`
	Message            string    `json:"message"`
	Response           string    `json:"response"`
	Sources            string    `json:"sources"`
	SuggestiveQuestion string    `json:"suggestive_question"`
	CreatedAt          time.Time `json:"created_at"`
}
