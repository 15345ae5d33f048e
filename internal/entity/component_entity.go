package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/pkg/store"
)

// Component uses the extractor's deterministic string id, not a uuid:
// (repository, id) is the composite key and a re-run replaces the whole
// set for a repository.
type Component struct {
	Id            string
	RepositoryId  uuid.UUID
	Name          string
	ComponentType string
	ParentPath    string
	StartLine     int
	EndLine       int
	Relations     []store.Relation
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
