package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document types a work plan can produce.
const (
	DocumentTypeOverview  = "overview"
	DocumentTypeModule    = "module"
	DocumentTypeClass     = "class"
	DocumentTypeService   = "service"
	DocumentTypeComponent = "component"
	DocumentTypeSystem    = "system"
	DocumentTypeWorkflow  = "workflow"
)

// Session types for a pipeline run.
const (
	SessionTypeFull        = "full"
	SessionTypeIncremental = "incremental"
)

// WorkPlanItem is one planned output document. ComponentIDs is empty only
// for the overview item.
type WorkPlanItem struct {
	DocPath         string                 `json:"doc_path"`
	Title           string                 `json:"title"`
	ComponentIDs    []string               `json:"component_ids"`
	DocumentType    string                 `json:"document_type"`
	Priority        int                    `json:"priority"`
	EstimatedTokens int                    `json:"estimated_tokens"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// SegmentDepth returns the number of dot-separated segments in the item's
// doc path. Used as the secondary sort key after priority.
func (i *WorkPlanItem) SegmentDepth() int {
	return len(strings.Split(i.DocPath, "."))
}

// WorkPlan is the ordered set of documents to generate for one repository
// in one run. Items are sorted by priority, then by doc-path segment depth.
type WorkPlan struct {
	RepositoryID         uuid.UUID              `json:"repository_id"`
	SessionType          string                 `json:"session_type"`
	Items                []WorkPlanItem         `json:"items"`
	TotalEstimatedTokens int                    `json:"total_estimated_tokens"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

// DocPaths returns the set of planned document paths. Pruning uses this to
// decide which persisted documents fell out of the plan.
func (p *WorkPlan) DocPaths() map[string]bool {
	paths := make(map[string]bool, len(p.Items))
	for _, item := range p.Items {
		paths[item.DocPath] = true
	}
	return paths
}
