package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepositoryId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_documents_repo_path,priority:1"`
	DocumentPath string         `gorm:"type:varchar(512);not null;uniqueIndex:idx_documents_repo_path,priority:2"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Content      string         `gorm:"type:text"`
	Summary      string         `gorm:"type:text"`
	DocumentType string         `gorm:"type:varchar(20);not null"`
	ComponentIds datatypes.JSON `gorm:"type:jsonb"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;index"`
}

func (Document) TableName() string {
	return "documents"
}

type DocumentLink struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RepositoryId     uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceDocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetDocumentId uuid.UUID `gorm:"type:uuid;not null;index"`
	LinkType         string    `gorm:"type:varchar(30);not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (DocumentLink) TableName() string {
	return "document_links"
}
