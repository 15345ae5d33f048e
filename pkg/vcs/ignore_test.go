package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIgnoreMatcher_DefaultDirectories(t *testing.T) {
	m := NewIgnoreMatcher()

	assert.True(t, m.Ignored("node_modules"))
	assert.True(t, m.Ignored("src/node_modules/react/index.js"))
	assert.True(t, m.Ignored(".git/HEAD"))
	assert.True(t, m.Ignored("dist/bundle.js"))
	assert.False(t, m.Ignored("src/services/auth.ts"))
}

func TestIgnoreMatcher_ParseIgnoreFile(t *testing.T) {
	m := NewIgnoreMatcher()
	m.ParseIgnoreFile(`# build output
coverage/
*.log

secrets.json
`)

	assert.True(t, m.Ignored("coverage/lcov.info"))
	assert.True(t, m.Ignored("server.log"))
	assert.True(t, m.Ignored("logs/server.log"))
	assert.True(t, m.Ignored("secrets.json"))
	assert.False(t, m.Ignored("src/logger.ts"))
}

func TestIgnoreMatcher_NegationDropped(t *testing.T) {
	m := NewIgnoreMatcher()
	m.ParseIgnoreFile("*.log\n!keep.log\n")

	// Negation patterns are unsupported and skipped, the base pattern
	// still applies.
	assert.True(t, m.Ignored("keep.log"))
	assert.True(t, m.Ignored("other.log"))
}

func TestIgnoreMatcher_DeepGlob(t *testing.T) {
	m := NewIgnoreMatcher("build/*")

	assert.True(t, m.Ignored("build/main.o"))
	assert.True(t, m.Ignored("build/sub/deep.o"))
	assert.False(t, m.Ignored("builder/main.go"))
}

func TestIsBinaryPath(t *testing.T) {
	assert.True(t, IsBinaryPath("assets/logo.png"))
	assert.True(t, IsBinaryPath("vendor/lib.so"))
	assert.True(t, IsBinaryPath("static/app.min.js"))
	assert.False(t, IsBinaryPath("src/app.js"))
	assert.False(t, IsBinaryPath("README.md"))
}

func TestInferLanguage(t *testing.T) {
	assert.Equal(t, "typescript", InferLanguage("src/auth.service.ts"))
	assert.Equal(t, "typescript", InferLanguage("components/App.tsx"))
	assert.Equal(t, "javascript", InferLanguage("lib/util.mjs"))
	assert.Equal(t, "python", InferLanguage("scripts/migrate.py"))
	assert.Equal(t, "go", InferLanguage("cmd/rest/main.go"))
	assert.Equal(t, "", InferLanguage("Makefile"))
}

func TestInferArtifactType(t *testing.T) {
	assert.Equal(t, "test", InferArtifactType("src/auth.test.ts"))
	assert.Equal(t, "test", InferArtifactType("pkg/store/plan_test.go"))
	assert.Equal(t, "test", InferArtifactType("tests/test_planner.py"))
	assert.Equal(t, "doc", InferArtifactType("docs/setup.md"))
	assert.Equal(t, "config", InferArtifactType("config/app.yaml"))
	assert.Equal(t, "source", InferArtifactType("src/index.ts"))
}
