package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GenerationSession struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepositoryId uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionType  string         `gorm:"type:varchar(20);not null"`
	Status       string         `gorm:"type:varchar(20);not null;index"`
	WorkPlan     datatypes.JSON `gorm:"type:jsonb"`
	Completed    int            `gorm:"not null;default:0"`
	Total        int            `gorm:"not null;default:0"`
	CurrentItem  string         `gorm:"type:varchar(512)"`
	Error        string         `gorm:"type:text"`
	StartedAt    time.Time      `gorm:"not null"`
	CompletedAt  *time.Time
}

func (GenerationSession) TableName() string {
	return "generation_sessions"
}

type GenerationMetric struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepositoryId uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentId   uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Model        string    `gorm:"type:varchar(100)"`
	TokensIn     int       `gorm:"not null;default:0"`
	TokensOut    int       `gorm:"not null;default:0"`
	CostEstimate float64   `gorm:"not null;default:0"`
	DurationMs   int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (GenerationMetric) TableName() string {
	return "generation_metrics"
}
