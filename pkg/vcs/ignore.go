package vcs

import (
	"path"
	"strings"
)

// defaultIgnoreDirs are skipped regardless of any .gitignore content.
var defaultIgnoreDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
	"__pycache__",
	".venv",
	".next",
	".cache",
	"coverage",
}

// binaryExtensions are never treated as documentable artifacts.
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".svg": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".exe": true,
	".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true,
	".bin": true, ".class": true, ".pyc": true, ".wasm": true, ".mp4": true,
	".mp3": true, ".webp": true, ".lock": true, ".min.js": true,
}

// IgnoreMatcher applies .gitignore-style patterns: bare names match at
// any depth, "dir/" suffixes match whole directory trees, and glob
// metacharacters go through path.Match. Negation patterns ("!keep") are
// explicitly unsupported: they are dropped at parse time, so a file they
// would have rescued stays ignored by the broader pattern. Known
// limitation, documented rather than guessed at.
type IgnoreMatcher struct {
	patterns []string
}

func NewIgnoreMatcher(extra ...string) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	m.patterns = append(m.patterns, defaultIgnoreDirs...)
	m.AddPatterns(extra...)
	return m
}

// ParseIgnoreFile feeds the lines of a .gitignore-style file into the
// matcher.
func (m *IgnoreMatcher) ParseIgnoreFile(content string) {
	for _, line := range strings.Split(content, "\n") {
		m.AddPatterns(line)
	}
}

func (m *IgnoreMatcher) AddPatterns(patterns ...string) {
	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "!") {
			continue
		}
		p = strings.TrimPrefix(p, "/")
		m.patterns = append(m.patterns, p)
	}
}

// Ignored reports whether a slash-separated relative path matches any
// pattern.
func (m *IgnoreMatcher) Ignored(relPath string) bool {
	relPath = strings.TrimPrefix(path.Clean(relPath), "./")
	base := path.Base(relPath)

	for _, raw := range m.patterns {
		p := strings.TrimSuffix(raw, "/")
		if p == "" {
			continue
		}

		if strings.ContainsAny(p, "*?[") {
			if ok, _ := path.Match(p, relPath); ok {
				return true
			}
			if ok, _ := path.Match(p, base); ok {
				return true
			}
			// "dir/*" also covers deeper nesting.
			if strings.HasSuffix(p, "/*") {
				prefix := strings.TrimSuffix(p, "/*")
				if strings.HasPrefix(relPath, prefix+"/") {
					return true
				}
			}
			continue
		}

		if base == p || relPath == p {
			return true
		}
		// Directory patterns match everything underneath.
		if strings.HasPrefix(relPath, p+"/") || strings.Contains(relPath, "/"+p+"/") {
			return true
		}
	}
	return false
}

// IsBinaryPath reports whether the path carries an extension the
// pipeline never documents.
func IsBinaryPath(relPath string) bool {
	lowered := strings.ToLower(relPath)
	if strings.HasSuffix(lowered, ".min.js") || strings.HasSuffix(lowered, ".min.css") {
		return true
	}
	return binaryExtensions[path.Ext(lowered)]
}
