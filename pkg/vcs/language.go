package vcs

import (
	"path"
	"strings"

	"ai-docgen-be/pkg/store"
)

var extensionLanguages = map[string]string{
	".ts":     "typescript",
	".tsx":    "typescript",
	".js":     "javascript",
	".jsx":    "javascript",
	".mjs":    "javascript",
	".cjs":    "javascript",
	".py":     "python",
	".go":     "go",
	".rb":     "ruby",
	".java":   "java",
	".kt":     "kotlin",
	".rs":     "rust",
	".php":    "php",
	".cs":     "csharp",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
	".vue":    "vue",
	".svelte": "svelte",
}

// InferLanguage maps a file extension to the language tag used for
// extractor routing. Unknown extensions yield an empty tag.
func InferLanguage(filePath string) string {
	return extensionLanguages[strings.ToLower(path.Ext(filePath))]
}

// InferArtifactType classifies a path as source, test, config or doc.
func InferArtifactType(filePath string) string {
	lowered := strings.ToLower(filePath)
	base := path.Base(lowered)

	switch {
	case strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") ||
		strings.HasSuffix(base, "_test.go") || strings.HasPrefix(base, "test_") ||
		strings.Contains(lowered, "/__tests__/"):
		return store.ArtifactTypeTest
	case strings.HasSuffix(base, ".md") || strings.HasSuffix(base, ".rst") || strings.HasSuffix(base, ".txt"):
		return store.ArtifactTypeDoc
	case strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".yaml") ||
		strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".toml") ||
		strings.HasSuffix(base, ".ini") || strings.HasSuffix(base, ".env"):
		return store.ArtifactTypeConfig
	default:
		return store.ArtifactTypeSource
	}
}
