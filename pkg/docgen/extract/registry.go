package extract

import (
	"ai-docgen-be/pkg/store"
)

// Extractor turns one artifact's raw text into components. Implementations
// are heuristic pattern matchers, not parsers: results are best-effort and
// an extractor must never panic on malformed input.
type Extractor interface {
	// Language returns the primary language tag this extractor handles.
	Language() string

	// Extract returns the components found in the artifact. Missing or
	// empty content yields an empty result, never an error.
	Extract(artifact *store.Artifact) []*store.Component
}

// Registry routes a language tag to its extractor. It is constructed
// explicitly at pipeline start and passed by reference into the
// orchestrator; there is no module-level registration.
type Registry struct {
	extractors map[string]Extractor
}

func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]Extractor),
	}
}

// NewDefaultRegistry returns a registry with all built-in extractors
// registered under their language tags and common aliases.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	ts := NewTypeScriptExtractor()
	r.Register("typescript", ts)
	r.Register("javascript", ts)
	r.Register("tsx", ts)
	r.Register("jsx", ts)

	py := NewPythonExtractor()
	r.Register("python", py)

	g := NewGoExtractor()
	r.Register("go", g)

	return r
}

func (r *Registry) Register(language string, extractor Extractor) {
	r.extractors[language] = extractor
}

// Get returns the extractor for a language tag, or nil when none is
// registered.
func (r *Registry) Get(language string) Extractor {
	return r.extractors[language]
}

// Languages returns the registered language tags.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.extractors))
	for lang := range r.extractors {
		langs = append(langs, lang)
	}
	return langs
}

// Extract routes the artifact to its language extractor. Unknown languages
// and artifacts without content contribute zero components. A panicking
// extractor is contained here so a single malformed artifact can never
// abort an extraction pass.
func (r *Registry) Extract(artifact *store.Artifact) (components []*store.Component) {
	defer func() {
		if rec := recover(); rec != nil {
			components = nil
		}
	}()

	if artifact == nil || artifact.Content == "" {
		return nil
	}

	extractor := r.Get(artifact.Language)
	if extractor == nil {
		return nil
	}

	return extractor.Extract(artifact)
}
