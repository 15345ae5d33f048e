package store

// ArtifactType classifies what kind of file an artifact is.
const (
	ArtifactTypeSource = "source"
	ArtifactTypeTest   = "test"
	ArtifactTypeConfig = "config"
	ArtifactTypeDoc    = "doc"
)

// Artifact is one discovered source file. Created during discovery,
// immutable once extracted; a re-analysis produces a new Artifact rather
// than mutating the old one.
type Artifact struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Language    string `json:"language"`
	Size        int64  `json:"size"`
	ContentHash string `json:"content_hash"`
	Type        string `json:"type"`

	// Content is populated lazily by the VCS adapter during extraction.
	Content string `json:"-"`
}
