package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/pkg/store"
)

type SessionStatus string

const (
	SessionStatusPlanning   SessionStatus = "planning"
	SessionStatusGenerating SessionStatus = "generating"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// GenerationSession is the single authoritative record of one pipeline
// run. Only the orchestrator that created it mutates it.
type GenerationSession struct {
	Id           uuid.UUID
	RepositoryId uuid.UUID
	SessionType  string
	Status       SessionStatus
	WorkPlan     *store.WorkPlan
	Completed    int
	Total        int
	CurrentItem  string
	Error        string
	StartedAt    time.Time
	CompletedAt  *time.Time
}

type GenerationMetric struct {
	Id           uuid.UUID
	RepositoryId uuid.UUID
	DocumentId   uuid.UUID
	SessionId    uuid.UUID
	Model        string
	TokensIn     int
	TokensOut    int
	CostEstimate float64
	DurationMs   int64
	CreatedAt    time.Time
}
