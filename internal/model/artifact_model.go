package model

import (
	"time"

	"github.com/google/uuid"
)

type Artifact struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepositoryId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_artifacts_repo_path,priority:1"`
	Path         string    `gorm:"type:varchar(1024);not null;uniqueIndex:idx_artifacts_repo_path,priority:2"`
	Language     string    `gorm:"type:varchar(50)"`
	ArtifactType string    `gorm:"type:varchar(20);not null"`
	Size         int64     `gorm:"not null;default:0"`
	ContentHash  string    `gorm:"type:varchar(128)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Artifact) TableName() string {
	return "artifacts"
}
