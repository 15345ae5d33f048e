package local

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ai-docgen-be/pkg/vcs"
)

// Adapter reads a repository from the local filesystem. The repoRef is
// the repository root directory; the branch parameter is ignored (the
// working tree is whatever is checked out).
type Adapter struct{}

var _ vcs.Adapter = &Adapter{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) ListFiles(ctx context.Context, repoRef, branch string) ([]vcs.FileInfo, error) {
	root, err := filepath.Abs(repoRef)
	if err != nil {
		return nil, fmt.Errorf("resolve repository root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("repository root %s not found", repoRef)
	}

	matcher := vcs.NewIgnoreMatcher()
	if raw, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher.ParseIgnoreFile(string(raw))
	}

	var files []vcs.FileInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if matcher.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Ignored(rel) || vcs.IsBinaryPath(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		files = append(files, vcs.FileInfo{
			Path:        rel,
			Size:        info.Size(),
			ContentHash: hashBytes(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (a *Adapter) GetFileContent(ctx context.Context, repoRef, path string) (*vcs.FileContent, error) {
	full := filepath.Join(repoRef, filepath.FromSlash(path))
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &vcs.FileContent{
		Content: string(content),
		Hash:    hashBytes(content),
		Size:    int64(len(content)),
	}, nil
}

func hashBytes(b []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
