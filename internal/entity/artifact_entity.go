package entity

import (
	"time"

	"github.com/google/uuid"
)

type Artifact struct {
	Id           uuid.UUID
	RepositoryId uuid.UUID
	Path         string
	Language     string
	ArtifactType string
	Size         int64
	ContentHash  string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
