package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Component rows carry the extractor's deterministic string id, so the
// primary key is composite with the repository id. The whole set for a
// repository is replaced on every extraction pass.
type Component struct {
	Id            string         `gorm:"type:varchar(1024);primaryKey"`
	RepositoryId  uuid.UUID      `gorm:"type:uuid;primaryKey;index"`
	Name          string         `gorm:"type:varchar(255);not null"`
	ComponentType string         `gorm:"type:varchar(20);not null"`
	ParentPath    string         `gorm:"type:varchar(1024);not null"`
	StartLine     int            `gorm:"not null;default:0"`
	EndLine       int            `gorm:"not null;default:0"`
	Relations     datatypes.JSON `gorm:"type:jsonb"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (Component) TableName() string {
	return "components"
}
