package store

import (
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/pkg/docgen/progress"
)

// GenerationResult records the outcome of one work-plan item. A failed
// item never aborts the run; it is folded into the aggregate result.
type GenerationResult struct {
	DocPath    string        `json:"doc_path"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	TokensIn   int           `json:"tokens_in"`
	TokensOut  int           `json:"tokens_out"`
	Cost       float64       `json:"cost"`
	LinksSaved int           `json:"links_saved"`
	Duration   time.Duration `json:"duration"`
}

// PhaseMetrics captures per-phase wall-clock durations plus discovery and
// extraction counts for one run.
type PhaseMetrics struct {
	DiscoveryDuration   time.Duration `json:"discovery_duration"`
	ExtractionDuration  time.Duration `json:"extraction_duration"`
	PlanningDuration    time.Duration `json:"planning_duration"`
	GenerationDuration  time.Duration `json:"generation_duration"`
	ArtifactsDiscovered int           `json:"artifacts_discovered"`
	ComponentsExtracted int           `json:"components_extracted"`
}

// RunResult is the aggregate outcome of one pipeline run. It is populated
// even when the run fails at a phase boundary, so callers can distinguish
// partial success from total failure.
type RunResult struct {
	Success            bool               `json:"success"`
	SessionID          uuid.UUID          `json:"session_id"`
	DocumentsGenerated int                `json:"documents_generated"`
	DocumentsPlanned   int                `json:"documents_planned"`
	LinksCreated       int                `json:"links_created"`
	EstimatedCost      float64            `json:"estimated_cost"`
	Metrics            PhaseMetrics       `json:"metrics"`
	Items              []GenerationResult `json:"items,omitempty"`
	Progress           []progress.Entry   `json:"progress,omitempty"`
	Error              string             `json:"error,omitempty"`
}
