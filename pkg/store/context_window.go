package store

import "github.com/google/uuid"

// ContextDocument is one prior document summary inside a context window.
type ContextDocument struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	DocumentPath   string    `json:"document_path"`
	Summary        string    `json:"summary"`
	DocumentType   string    `json:"document_type"`
	RelevanceScore float64   `json:"relevance_score"`
}

// ContextWindow is the bounded set of previously generated document
// summaries supplied to guide new document generation. TotalTokens is an
// estimate only; the budget is advisory and never enforced by truncation.
type ContextWindow struct {
	Documents   []ContextDocument      `json:"documents"`
	TotalTokens int                    `json:"total_tokens"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// EstimateTokens approximates token usage for a title + summary pair using
// the usual 4-characters-per-token rule of thumb.
func EstimateTokens(title, summary string) int {
	n := len(title) + 1 + len(summary)
	return (n + 3) / 4
}
