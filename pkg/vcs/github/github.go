package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"ai-docgen-be/pkg/vcs"
)

const defaultTimeout = 30 * time.Second

// maxBlobSize skips files the tree API reports above this size.
const maxBlobSize = 1024 * 1024

// Adapter reads repository files through the GitHub API. The repoRef is
// either "owner/repo" or a full https://github.com/owner/repo URL.
type Adapter struct {
	client *gh.Client
}

var _ vcs.Adapter = &Adapter{}

// NewAdapter creates a GitHub adapter. An empty token yields an
// unauthenticated client with the public rate limits.
func NewAdapter(ctx context.Context, token string) *Adapter {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = defaultTimeout

	return &Adapter{client: gh.NewClient(httpClient)}
}

func (a *Adapter) ListFiles(ctx context.Context, repoRef, branch string) ([]vcs.FileInfo, error) {
	owner, repo, err := parseRepoRef(repoRef)
	if err != nil {
		return nil, err
	}

	if branch == "" {
		repository, _, err := a.client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
		}
		branch = repository.GetDefaultBranch()
	}

	tree, _, err := a.client.Git.GetTree(ctx, owner, repo, branch, true)
	if err != nil {
		return nil, fmt.Errorf("get tree %s/%s@%s: %w", owner, repo, branch, err)
	}

	matcher := vcs.NewIgnoreMatcher()
	if raw, err := a.GetFileContent(ctx, repoRef, ".gitignore"); err == nil && raw != nil {
		matcher.ParseIgnoreFile(raw.Content)
	}

	files := make([]vcs.FileInfo, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		path := entry.GetPath()
		if matcher.Ignored(path) || vcs.IsBinaryPath(path) {
			continue
		}
		if entry.GetSize() > maxBlobSize {
			continue
		}

		files = append(files, vcs.FileInfo{
			Path:        path,
			Size:        int64(entry.GetSize()),
			ContentHash: entry.GetSHA(),
		})
	}

	return files, nil
}

func (a *Adapter) GetFileContent(ctx context.Context, repoRef, path string) (*vcs.FileContent, error) {
	owner, repo, err := parseRepoRef(repoRef)
	if err != nil {
		return nil, err
	}

	content, _, resp, err := a.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get contents %s: %w", path, err)
	}
	if content == nil {
		return nil, fmt.Errorf("path %s is a directory", path)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode contents %s: %w", path, err)
	}

	return &vcs.FileContent{
		Content: decoded,
		Hash:    content.GetSHA(),
		Size:    int64(len(decoded)),
	}, nil
}

// parseRepoRef accepts "owner/repo" or a github.com URL.
func parseRepoRef(repoRef string) (owner, repo string, err error) {
	ref := strings.TrimSuffix(repoRef, ".git")
	ref = strings.TrimPrefix(ref, "https://")
	ref = strings.TrimPrefix(ref, "http://")
	ref = strings.TrimPrefix(ref, "github.com/")
	ref = strings.Trim(ref, "/")

	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q, want owner/repo", repoRef)
	}
	return parts[0], parts[1], nil
}
