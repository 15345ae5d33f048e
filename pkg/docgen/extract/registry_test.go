package extract

import (
	"testing"

	"ai-docgen-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoutesByLanguage(t *testing.T) {
	r := NewDefaultRegistry()

	components := r.Extract(&store.Artifact{
		Path:     "main.go",
		Language: "go",
		Content:  "func main() {\n\trun()\n}\n",
	})
	require.NotEmpty(t, components)
	assert.Equal(t, store.ComponentTypeFunction, components[0].Type)
	assert.Equal(t, "main", components[0].Name)
}

func TestRegistryUnknownLanguage(t *testing.T) {
	r := NewDefaultRegistry()

	components := r.Extract(&store.Artifact{
		Path:     "build.gradle",
		Language: "gradle",
		Content:  "apply plugin: 'java'",
	})
	assert.Empty(t, components)
}

func TestRegistryNilAndEmptyArtifact(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Empty(t, r.Extract(nil))
	assert.Empty(t, r.Extract(&store.Artifact{Path: "a.ts", Language: "typescript"}))
}

func TestRegistryContainsPanic(t *testing.T) {
	r := NewRegistry()
	r.Register("evil", panickingExtractor{})

	assert.NotPanics(t, func() {
		components := r.Extract(&store.Artifact{Path: "x", Language: "evil", Content: "x"})
		assert.Empty(t, components)
	})
}

type panickingExtractor struct{}

func (panickingExtractor) Language() string { return "evil" }

func (panickingExtractor) Extract(*store.Artifact) []*store.Component {
	panic("malformed input")
}

func TestJavaScriptAliasesShareExtractor(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Same(t, r.Get("typescript"), r.Get("javascript"))
	assert.Same(t, r.Get("typescript"), r.Get("tsx"))
}
