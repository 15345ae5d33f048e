package store

import (
	"fmt"
	"strings"
)

// Component types produced by the extractors.
const (
	ComponentTypeClass     = "class"
	ComponentTypeFunction  = "function"
	ComponentTypeHook      = "hook"
	ComponentTypeComponent = "component"
	ComponentTypeService   = "service"
	ComponentTypeType      = "type"
	ComponentTypeInterface = "interface"
	ComponentTypeConstant  = "constant"
	ComponentTypeVariable  = "variable"
	ComponentTypeExport    = "export"
)

// Relation types between a component and another named entity.
const (
	RelationImports    = "imports"
	RelationUses       = "uses"
	RelationExtends    = "extends"
	RelationImplements = "implements"
	RelationCalls      = "calls"
	RelationComposes   = "composes"
	RelationExposes    = "exposes"
	RelationDependsOn  = "depends_on"
)

// Relation is a directed, confidence-scored edge from a component to a
// named target. Confidence is always kept in [0,1].
type Relation struct {
	Type       string  `json:"type"`
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

// Component is one logical unit extracted from an artifact. StartLine and
// EndLine are best-effort: the extractors count nesting depth, they do not
// parse a grammar.
type Component struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	ParentPath string                 `json:"parent_path"`
	StartLine  int                    `json:"start_line"`
	EndLine    int                    `json:"end_line"`
	Relations  []Relation             `json:"relations,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// ComponentID derives the deterministic id for a component. Re-extracting
// identical content must yield identical ids, so the id is a pure function
// of the owning path, the component type and the case-normalized name.
func ComponentID(parentPath, componentType, name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	return fmt.Sprintf("%s:%s:%s", parentPath, componentType, normalized)
}

// IsExported reports whether the extractor flagged this component as part
// of the artifact's public surface.
func (c *Component) IsExported() bool {
	if c.Metadata == nil {
		return false
	}
	v, ok := c.Metadata["isExported"].(bool)
	return ok && v
}

// AddRelation appends a relation, clamping confidence into [0,1].
func (c *Component) AddRelation(relType, target string, confidence float64) {
	if target == "" {
		return
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	c.Relations = append(c.Relations, Relation{
		Type:       relType,
		Target:     target,
		Confidence: confidence,
	})
}
