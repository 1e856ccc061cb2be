package dto

import "time"

type CreateSessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type DeleteSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type SessionResponse struct {
	SessionId string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
