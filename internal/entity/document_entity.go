package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	RepositoryId uuid.UUID
	DocumentPath string
	Title        string
	Content      string
	Summary      string
	DocumentType string
	ComponentIds []string
	Metadata     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

type DocumentLink struct {
	Id               uuid.UUID
	RepositoryId     uuid.UUID
	SourceDocumentId uuid.UUID
	TargetDocumentId uuid.UUID
	LinkType         string
	CreatedAt        time.Time
}
