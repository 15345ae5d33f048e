package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestAdapter_ListFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/auth.service.ts", "export class AuthService {}")
	writeFile(t, root, "src/util.ts", "export const helper = () => {}")
	writeFile(t, root, "node_modules/react/index.js", "module.exports = {}")
	writeFile(t, root, "assets/logo.png", "\x89PNG")
	writeFile(t, root, ".gitignore", "secrets.json\n")
	writeFile(t, root, "secrets.json", "{}")

	adapter := NewAdapter()
	files, err := adapter.ListFiles(context.Background(), root, "main")
	require.NoError(t, err)

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/auth.service.ts")
	assert.Contains(t, paths, "src/util.ts")
	assert.NotContains(t, paths, "node_modules/react/index.js")
	assert.NotContains(t, paths, "assets/logo.png")
	assert.NotContains(t, paths, "secrets.json")

	for _, f := range files {
		assert.NotEmpty(t, f.ContentHash)
		assert.Greater(t, f.Size, int64(0))
	}
}

func TestAdapter_ListFiles_MissingRoot(t *testing.T) {
	adapter := NewAdapter()
	_, err := adapter.ListFiles(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}

func TestAdapter_GetFileContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.ts", "console.log('hi')")

	adapter := NewAdapter()
	content, err := adapter.GetFileContent(context.Background(), root, "src/index.ts")
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, "console.log('hi')", content.Content)
	assert.Equal(t, int64(len(content.Content)), content.Size)
	assert.Len(t, content.Hash, 64)
}

func TestAdapter_GetFileContent_Missing(t *testing.T) {
	adapter := NewAdapter()
	content, err := adapter.GetFileContent(context.Background(), t.TempDir(), "nope.ts")
	assert.NoError(t, err)
	assert.Nil(t, content)
}

func TestAdapter_ListFiles_HashMatchesContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main")

	adapter := NewAdapter()
	files, err := adapter.ListFiles(context.Background(), root, "")
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := adapter.GetFileContent(context.Background(), root, "main.go")
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, files[0].ContentHash, content.Hash)
}
