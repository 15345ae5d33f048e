package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentListItem struct {
	Id           uuid.UUID `json:"id"`
	DocumentPath string    `json:"document_path"`
	Title        string    `json:"title"`
	DocumentType string    `json:"document_type"`
	Summary      string    `json:"summary"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DocumentLinkItem struct {
	TargetDocumentId uuid.UUID `json:"target_document_id"`
	TargetPath       string    `json:"target_path"`
	LinkType         string    `json:"link_type"`
}

type ShowDocumentResponse struct {
	Id           uuid.UUID          `json:"id"`
	RepositoryId uuid.UUID          `json:"repository_id"`
	DocumentPath string             `json:"document_path"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Summary      string             `json:"summary"`
	DocumentType string             `json:"document_type"`
	ComponentIds []string           `json:"component_ids,omitempty"`
	Links        []DocumentLinkItem `json:"links,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
}
