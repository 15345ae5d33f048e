package dto

import (
	"time"

	"github.com/google/uuid"
)

type TriggerGenerationRequest struct {
	RepositoryId uuid.UUID `json:"repository_id" validate:"required"`
	SessionType  string    `json:"session_type" validate:"omitempty,oneof=full incremental"`
	SkipPruning  bool      `json:"skip_pruning"`
}

type TriggerGenerationResponse struct {
	RepositoryId uuid.UUID `json:"repository_id"`
	Queued       bool      `json:"queued"`
}

// GenerationJobMessage is the watermill payload for one queued run.
type GenerationJobMessage struct {
	RepositoryId uuid.UUID `json:"repository_id"`
	SessionType  string    `json:"session_type"`
	SkipPruning  bool      `json:"skip_pruning"`
}

type SessionProgress struct {
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	CurrentItem string `json:"current_item,omitempty"`
}

type SessionResponse struct {
	Id           uuid.UUID       `json:"id"`
	RepositoryId uuid.UUID       `json:"repository_id"`
	SessionType  string          `json:"session_type"`
	Status       string          `json:"status"`
	Progress     SessionProgress `json:"progress"`
	Error        string          `json:"error,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}
