package model

import (
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `gorm:"type:varchar(255);not null"`
	Provider      string     `gorm:"type:varchar(20);not null"`
	Ref           string     `gorm:"type:varchar(512);not null"`
	DefaultBranch string     `gorm:"type:varchar(255)"`
	Status        string     `gorm:"type:varchar(20);not null;default:'idle';index"`
	LastSessionId *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (Repository) TableName() string {
	return "repositories"
}
