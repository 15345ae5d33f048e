package extract

import (
	"regexp"
	"strings"
)

// Shared structural scanning helpers. These deliberately approximate:
// brace counting and indentation tracking stand in for a real grammar, so
// end lines may be off for unusual formatting. That is the documented
// contract of the extractors.

var callPattern = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`)

// controlFlowKeywords are excluded when scanning a body for call-like
// tokens.
var controlFlowKeywords = map[string]bool{
	"if":      true,
	"else":    true,
	"for":     true,
	"while":   true,
	"switch":  true,
	"catch":   true,
	"return":  true,
	"typeof":  true,
	"await":   true,
	"async":   true,
	"func":    true,
	"function": true,
	"select":  true,
	"defer":   true,
	"go":      true,
	"new":     true,
	"with":    true,
	"elif":    true,
	"except":  true,
	"assert":  true,
	"print":   true,
	"range":   true,
	"make":    true,
	"len":     true,
}

// endLineByBraces scans forward from startIdx (0-based) counting brace
// depth and returns the 0-based index of the line where depth returns to
// baseline. If the block never closes the last line is returned.
func endLineByBraces(lines []string, startIdx int) int {
	depth := 0
	opened := false
	for i := startIdx; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

// endLineByIndent scans forward from startIdx and returns the 0-based
// index of the last line belonging to the block that starts there, judged
// by indentation depth.
func endLineByIndent(lines []string, startIdx int) int {
	baseIndent := indentOf(lines[startIdx])
	end := startIdx
	for i := startIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentOf(lines[i]) <= baseIndent {
			break
		}
		end = i
	}
	return end
}

func indentOf(line string) int {
	count := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			count++
		case '\t':
			count += 4
		default:
			return count
		}
	}
	return count
}

// scanCalls returns the distinct call-like identifiers in a body snippet,
// excluding control-flow keywords and the owner's own name. Order follows
// first appearance.
func scanCalls(body, ownerName string) []string {
	var calls []string
	seen := map[string]bool{}
	for _, match := range callPattern.FindAllStringSubmatch(body, -1) {
		name := match[1]
		if controlFlowKeywords[name] || name == ownerName || seen[name] {
			continue
		}
		seen[name] = true
		calls = append(calls, name)
	}
	return calls
}

// blockText joins lines[start..end] (inclusive, 0-based) into one string.
func blockText(lines []string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start:end+1], "\n")
}

// splitLines normalizes line endings before splitting.
func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
