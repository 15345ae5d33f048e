package extract

import (
	"regexp"
	"strings"

	"ai-docgen-be/pkg/store"
)

// GoExtractor handles Go sources with the same brace-depth heuristics as
// the TypeScript extractor. Exported-ness follows the capitalization rule.
type GoExtractor struct{}

func NewGoExtractor() *GoExtractor {
	return &GoExtractor{}
}

func (e *GoExtractor) Language() string {
	return "go"
}

var (
	goImportSingle = regexp.MustCompile(`^\s*import\s+(?:(\w+)\s+)?"([^"]+)"`)
	goImportLine   = regexp.MustCompile(`^\s*(?:(\w+)\s+)?"([^"]+)"`)
	goStruct       = regexp.MustCompile(`^type\s+(\w+)\s+struct\s*\{`)
	goInterface    = regexp.MustCompile(`^type\s+(\w+)\s+interface\s*\{`)
	goTypeAlias    = regexp.MustCompile(`^type\s+(\w+)\s+`)
	goFunc         = regexp.MustCompile(`^func\s+(?:\((\w+)\s+\*?([\w\[\]]+)\)\s+)?(\w+)\s*\(`)
	goConst        = regexp.MustCompile(`^(?:const|var)\s+(\w+)`)
)

func (e *GoExtractor) Extract(artifact *store.Artifact) []*store.Component {
	if artifact == nil || artifact.Content == "" {
		return nil
	}

	lines := splitLines(artifact.Content)
	imports := e.scanImports(lines)

	var components []*store.Component
	add := func(c *store.Component) {
		for _, imp := range imports {
			c.AddRelation(store.RelationImports, imp.target, imp.confidence)
		}
		components = append(components, c)
	}

	for idx, line := range lines {
		if m := goStruct.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeClass, m[1], idx, end)
			comp.Metadata["isExported"] = isCapitalized(m[1])
			comp.Metadata["kind"] = "struct"
			add(comp)
			continue
		}
		if m := goInterface.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeInterface, m[1], idx, end)
			comp.Metadata["isExported"] = isCapitalized(m[1])
			add(comp)
			continue
		}
		if m := goFunc.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeFunction, m[3], idx, end)
			comp.Metadata["isExported"] = isCapitalized(m[3])
			if m[2] != "" {
				comp.Metadata["isMethod"] = true
				comp.Metadata["receiver"] = m[2]
				comp.AddRelation(store.RelationDependsOn, m[2], 0.9)
			}
			for _, call := range scanCalls(blockText(lines, idx+1, end), m[3]) {
				comp.AddRelation(store.RelationCalls, call, 0.8)
			}
			add(comp)
			continue
		}
		if m := goTypeAlias.FindStringSubmatch(line); m != nil && !strings.Contains(line, "struct") && !strings.Contains(line, "interface") {
			comp := e.newComponent(artifact.Path, store.ComponentTypeType, m[1], idx, idx)
			comp.Metadata["isExported"] = isCapitalized(m[1])
			add(comp)
			continue
		}
		if m := goConst.FindStringSubmatch(line); m != nil {
			comp := e.newComponent(artifact.Path, store.ComponentTypeConstant, m[1], idx, idx)
			comp.Metadata["isExported"] = isCapitalized(m[1])
			add(comp)
		}
	}

	return components
}

func (e *GoExtractor) scanImports(lines []string) []tsImport {
	var imports []tsImport
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import (") {
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed == ")" {
				inBlock = false
				continue
			}
			if m := goImportLine.FindStringSubmatch(line); m != nil {
				imports = append(imports, tsImport{target: importLocalName(m[1], m[2]), confidence: 0.95})
			}
			continue
		}
		if m := goImportSingle.FindStringSubmatch(line); m != nil {
			imports = append(imports, tsImport{target: importLocalName(m[1], m[2]), confidence: 0.95})
		}
	}
	return imports
}

// importLocalName resolves the identifier an import is referred to by:
// the alias when present, the last path element otherwise.
func importLocalName(alias, path string) string {
	if alias != "" && alias != "_" {
		return alias
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func (e *GoExtractor) newComponent(path, compType, name string, start, end int) *store.Component {
	return &store.Component{
		ID:         store.ComponentID(path, compType, name),
		Name:       name,
		Type:       compType,
		ParentPath: path,
		StartLine:  start + 1,
		EndLine:    end + 1,
		Metadata:   map[string]interface{}{},
	}
}
