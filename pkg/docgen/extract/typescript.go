package extract

import (
	"regexp"
	"strings"

	"ai-docgen-be/pkg/store"
)

// TypeScriptExtractor handles TypeScript and JavaScript sources,
// including JSX/TSX. Declarations are matched line by line and block
// extents are computed by brace-depth counting.
type TypeScriptExtractor struct{}

func NewTypeScriptExtractor() *TypeScriptExtractor {
	return &TypeScriptExtractor{}
}

func (e *TypeScriptExtractor) Language() string {
	return "typescript"
}

var (
	tsImportNamed     = regexp.MustCompile(`^\s*import\s+(?:type\s+)?\{([^}]+)\}\s+from\s+['"]([^'"]+)['"]`)
	tsImportDefault   = regexp.MustCompile(`^\s*import\s+([A-Za-z_$][\w$]*)\s*(?:,\s*\{([^}]+)\})?\s+from\s+['"]([^'"]+)['"]`)
	tsImportNamespace = regexp.MustCompile(`^\s*import\s+\*\s+as\s+([A-Za-z_$][\w$]*)\s+from\s+['"]([^'"]+)['"]`)
	tsRequire         = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*require\(['"]([^'"]+)['"]\)`)

	tsClass     = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(abstract\s+)?class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([\w.$]+))?(?:\s+implements\s+([\w.,\s$]+?))?\s*\{`)
	tsFunction  = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	tsArrow     = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)(?:\s*:\s*[^=]+)?\s*=\s*(async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)
	tsFuncExpr  = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?function\b`)
	tsInterface = regexp.MustCompile(`^\s*(export\s+)?interface\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([\w.,\s$]+?))?\s*\{`)
	tsTypeAlias = regexp.MustCompile(`^\s*(export\s+)?type\s+([A-Za-z_$][\w$]*)\s*=`)
	tsEnum      = regexp.MustCompile(`^\s*(export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`)
	tsConstant  = regexp.MustCompile(`^\s*(export\s+)?const\s+([A-Z][A-Z0-9_]*)\s*=`)
	tsMethod    = regexp.MustCompile(`^\s+(?:public\s+|private\s+|protected\s+|static\s+)*(async\s+)?([a-z_$][\w$]*)\s*\([^)]*\)\s*(?::\s*[^{]+)?\{`)

	tsHookCall = regexp.MustCompile(`\b(use[A-Z][\w$]*)\s*\(`)
	tsJSX      = regexp.MustCompile(`<[A-Z][\w$]*[\s/>]`)
)

type tsImport struct {
	target     string
	confidence float64
}

func (e *TypeScriptExtractor) Extract(artifact *store.Artifact) []*store.Component {
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
		if m := tsClass.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeClass, m[3], idx, end)
			comp.Metadata["isExported"] = m[1] != ""
			if m[2] != "" {
				comp.Metadata["isAbstract"] = true
			}
			if m[4] != "" {
				comp.AddRelation(store.RelationExtends, m[4], 0.9)
			}
			for _, impl := range splitIdentifierList(m[5]) {
				comp.AddRelation(store.RelationImplements, impl, 0.85)
			}
			add(comp)

			// Method-shaped lines inside the class body become function
			// components in their own right; the planner later claims
			// them back into the class document by position.
			for i := idx + 1; i <= end && i < len(lines); i++ {
				mm := tsMethod.FindStringSubmatch(lines[i])
				if mm == nil || mm[2] == "constructor" {
					continue
				}
				mEnd := endLineByBraces(lines, i)
				method := e.newComponent(artifact.Path, store.ComponentTypeFunction, mm[2], i, mEnd)
				method.Metadata["isMethod"] = true
				method.Metadata["parentClass"] = m[3]
				method.Metadata["isAsync"] = mm[1] != ""
				e.attachBodyRelations(method, blockText(lines, i, mEnd), mm[2])
				add(method)
			}
			continue
		}

		if m := tsFunction.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			add(e.functionLike(artifact.Path, m[3], m[1] != "", m[2] != "", lines, idx, end))
			continue
		}
		if m := tsArrow.FindStringSubmatch(line); m != nil {
			end := idx
			if strings.Contains(line, "{") || !strings.Contains(line, ";") {
				end = endLineByBraces(lines, idx)
			}
			add(e.functionLike(artifact.Path, m[2], m[1] != "", m[3] != "", lines, idx, end))
			continue
		}
		if m := tsFuncExpr.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			add(e.functionLike(artifact.Path, m[2], m[1] != "", m[3] != "", lines, idx, end))
			continue
		}
		if m := tsInterface.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeInterface, m[2], idx, end)
			comp.Metadata["isExported"] = m[1] != ""
			for _, ext := range splitIdentifierList(m[3]) {
				comp.AddRelation(store.RelationExtends, ext, 0.85)
			}
			add(comp)
			continue
		}
		if m := tsTypeAlias.FindStringSubmatch(line); m != nil {
			comp := e.newComponent(artifact.Path, store.ComponentTypeType, m[2], idx, idx)
			comp.Metadata["isExported"] = m[1] != ""
			add(comp)
			continue
		}
		if m := tsEnum.FindStringSubmatch(line); m != nil {
			end := endLineByBraces(lines, idx)
			comp := e.newComponent(artifact.Path, store.ComponentTypeConstant, m[2], idx, end)
			comp.Metadata["isExported"] = m[1] != ""
			comp.Metadata["isEnum"] = true
			add(comp)
			continue
		}
		if m := tsConstant.FindStringSubmatch(line); m != nil {
			comp := e.newComponent(artifact.Path, store.ComponentTypeConstant, m[2], idx, idx)
			comp.Metadata["isExported"] = m[1] != ""
			add(comp)
		}
	}

	return components
}

// functionLike classifies a function-shaped declaration as a hook, a UI
// component or a plain function and attaches body relations.
func (e *TypeScriptExtractor) functionLike(path, name string, exported, async bool, lines []string, start, end int) *store.Component {
	body := blockText(lines, start, end)

	compType := store.ComponentTypeFunction
	switch {
	case tsHookName(name):
		compType = store.ComponentTypeHook
	case isCapitalized(name) && looksLikeJSX(body):
		compType = store.ComponentTypeComponent
	}

	comp := e.newComponent(path, compType, name, start, end)
	comp.Metadata["isExported"] = exported
	comp.Metadata["isAsync"] = async
	e.attachBodyRelations(comp, body, name)
	return comp
}

func (e *TypeScriptExtractor) attachBodyRelations(comp *store.Component, body, name string) {
	hooks := map[string]bool{}
	if comp.Type == store.ComponentTypeComponent || comp.Type == store.ComponentTypeHook {
		for _, m := range tsHookCall.FindAllStringSubmatch(body, -1) {
			if m[1] == name || hooks[m[1]] {
				continue
			}
			hooks[m[1]] = true
			comp.AddRelation(store.RelationUses, m[1], 0.9)
		}
	}
	for _, call := range scanCalls(body, name) {
		if hooks[call] {
			continue
		}
		comp.AddRelation(store.RelationCalls, call, 0.8)
	}
}

func (e *TypeScriptExtractor) scanImports(lines []string) []tsImport {
	var imports []tsImport
	for _, line := range lines {
		if m := tsImportNamespace.FindStringSubmatch(line); m != nil {
			imports = append(imports, tsImport{target: m[1], confidence: 0.85})
			continue
		}
		if m := tsImportNamed.FindStringSubmatch(line); m != nil {
			for _, name := range splitIdentifierList(m[1]) {
				imports = append(imports, tsImport{target: name, confidence: 0.95})
			}
			continue
		}
		if m := tsImportDefault.FindStringSubmatch(line); m != nil {
			imports = append(imports, tsImport{target: m[1], confidence: 0.95})
			for _, name := range splitIdentifierList(m[2]) {
				imports = append(imports, tsImport{target: name, confidence: 0.95})
			}
			continue
		}
		if m := tsRequire.FindStringSubmatch(line); m != nil {
			imports = append(imports, tsImport{target: m[1], confidence: 0.85})
		}
	}
	return imports
}

func (e *TypeScriptExtractor) newComponent(path, compType, name string, start, end int) *store.Component {
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

// splitIdentifierList splits "A, B as C, D" into bare identifiers.
func splitIdentifierList(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		// "Original as Alias" keeps the local alias.
		if fields := strings.Fields(part); len(fields) == 3 && fields[1] == "as" {
			part = fields[2]
		}
		names = append(names, part)
	}
	return names
}

func isCapitalized(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func tsHookName(name string) bool {
	return len(name) > 3 && strings.HasPrefix(name, "use") && name[3] >= 'A' && name[3] <= 'Z'
}

func looksLikeJSX(body string) bool {
	return tsJSX.MatchString(body) || strings.Contains(body, "return (")
}
