package plan

import (
	"path/filepath"
	"strings"
)

// genericNames are doc-path stems too ambiguous to stand alone; they get
// prefixed with the containing file's base name.
var genericNames = map[string]bool{
	"main":  true,
	"app":   true,
	"index": true,
	"init":  true,
}

var nonAlnum = strings.NewReplacer(
	"-", "_", ".", "_", "/", "_", "\\", "_", " ", "_",
)

// DeriveDocPath turns a component or file name into a document path
// segment: lower-cased, leading/trailing underscores and at-signs
// stripped, non-alphanumerics replaced with underscores. Too-short or
// generic results are prefixed with the owning file's base name.
func DeriveDocPath(name, parentPath string) string {
	derived := sanitize(name)
	if len(derived) < 3 || genericNames[derived] {
		base := sanitize(fileBase(parentPath))
		if base != "" && base != derived {
			derived = base + "_" + derived
		}
	}
	return derived
}

func sanitize(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.Trim(lowered, "_@")

	var b strings.Builder
	for _, ch := range nonAlnum.Replace(lowered) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// fileBase returns the file name without directories or extension.
func fileBase(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
