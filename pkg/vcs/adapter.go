package vcs

import "context"

// FileInfo is one candidate file reported by a listing, already filtered
// by the adapter's ignore-pattern logic.
type FileInfo struct {
	Path        string
	Size        int64
	ContentHash string
}

// FileContent is the fetched content of a single file.
type FileContent struct {
	Content string
	Hash    string
	Size    int64
}

// Adapter is the version-control read interface the pipeline consumes.
// Implementations filter out binary extensions and ignore-pattern matches
// before returning listings. GetFileContent returns (nil, nil) when the
// file does not exist.
type Adapter interface {
	ListFiles(ctx context.Context, repoRef, branch string) ([]FileInfo, error)
	GetFileContent(ctx context.Context, repoRef, path string) (*FileContent, error)
}
