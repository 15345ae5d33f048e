package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRepositoryID struct {
	RepositoryID uuid.UUID
}

func (s ByRepositoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("repository_id = ?", s.RepositoryID)
}

type ByDocumentPath struct {
	DocumentPath string
}

func (s ByDocumentPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_path = ?", s.DocumentPath)
}

type ByDocumentPaths struct {
	DocumentPaths []string
}

func (s ByDocumentPaths) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_path IN ?", s.DocumentPaths)
}

type ByPath struct {
	Path string
}

func (s ByPath) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path = ?", s.Path)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type BySourceDocumentID struct {
	SourceDocumentID uuid.UUID
}

func (s BySourceDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_document_id = ?", s.SourceDocumentID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByComponentIDs struct {
	ComponentIDs []string
}

func (s ByComponentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.ComponentIDs)
}
