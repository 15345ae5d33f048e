package extract

import (
	"regexp"
	"strings"

	"ai-docgen-be/pkg/store"
)

// PythonExtractor handles Python sources. Block extents are tracked by
// indentation depth, decorators are attached as metadata by scanning the
// contiguous decorator lines immediately preceding a declaration.
type PythonExtractor struct{}

func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

func (e *PythonExtractor) Language() string {
	return "python"
}

var (
	pyImport     = regexp.MustCompile(`^\s*import\s+([\w.]+)(?:\s+as\s+(\w+))?`)
	pyFromImport = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\s+(.+)`)
	pyClass      = regexp.MustCompile(`^(\s*)class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	pyDef        = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+(\w+)\s*\(`)
	pyDecorator  = regexp.MustCompile(`^\s*@([\w.]+)`)
	pyConstant   = regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*=`)
)

func (e *PythonExtractor) Extract(artifact *store.Artifact) []*store.Component {
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
		if m := pyClass.FindStringSubmatch(line); m != nil {
			end := endLineByIndent(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeClass, m[2], idx, end)
			comp.Metadata["isExported"] = !strings.HasPrefix(m[2], "_")
			for _, base := range splitIdentifierList(m[3]) {
				if base == "object" {
					continue
				}
				comp.AddRelation(store.RelationExtends, base, 0.9)
			}
			e.attachDecorators(comp, lines, idx)
			add(comp)
			continue
		}

		if m := pyDef.FindStringSubmatch(line); m != nil {
			end := endLineByIndent(lines, idx)
			name := m[2]
			comp := e.newComponent(artifact.Path, store.ComponentTypeFunction, name, idx, end)
			comp.Metadata["isExported"] = !strings.HasPrefix(name, "_")
			comp.Metadata["isAsync"] = strings.Contains(line, "async def")
			if len(m[1]) > 0 {
				comp.Metadata["isMethod"] = true
			}
			e.attachDecorators(comp, lines, idx)
			for _, call := range scanCalls(blockText(lines, idx+1, end), name) {
				comp.AddRelation(store.RelationCalls, call, 0.8)
			}
			add(comp)
			continue
		}

		if m := pyConstant.FindStringSubmatch(line); m != nil {
			comp := e.newComponent(artifact.Path, store.ComponentTypeConstant, m[1], idx, idx)
			comp.Metadata["isExported"] = true
			add(comp)
		}
	}

	return components
}

// attachDecorators walks backwards over the contiguous decorator lines
// directly above the declaration and records them as metadata.
func (e *PythonExtractor) attachDecorators(comp *store.Component, lines []string, declIdx int) {
	var decorators []string
	for i := declIdx - 1; i >= 0; i-- {
		m := pyDecorator.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		decorators = append([]string{m[1]}, decorators...)
	}
	if len(decorators) > 0 {
		comp.Metadata["decorators"] = decorators
	}
}

func (e *PythonExtractor) scanImports(lines []string) []tsImport {
	var imports []tsImport
	for _, line := range lines {
		if m := pyFromImport.FindStringSubmatch(line); m != nil {
			for _, name := range splitImportedNames(m[2]) {
				imports = append(imports, tsImport{target: name, confidence: 0.95})
			}
			continue
		}
		if m := pyImport.FindStringSubmatch(line); m != nil {
			target := m[1]
			if m[2] != "" {
				target = m[2]
			}
			imports = append(imports, tsImport{target: target, confidence: 0.9})
		}
	}
	return imports
}

// splitImportedNames handles "a, b as c" and the wildcard form.
func splitImportedNames(list string) []string {
	list = strings.TrimSpace(strings.Trim(list, "()"))
	if list == "*" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if fields := strings.Fields(part); len(fields) == 3 && fields[1] == "as" {
			part = fields[2]
		}
		names = append(names, part)
	}
	return names
}

func (e *PythonExtractor) newComponent(path, compType, name string, start, end int) *store.Component {
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
