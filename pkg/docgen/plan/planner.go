package plan

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"ai-docgen-be/pkg/store"

	"github.com/google/uuid"
)

const (
	overviewDocPath       = "overview"
	overviewTokenEstimate = 500

	basePriority      = 5
	baseItemTokens    = 200
	perComponentBase  = 50
	perRelationTokens = 20
)

// serviceKeywords mark a function name as service-shaped.
var serviceKeywords = []string{
	"service", "manager", "handler", "controller", "client", "api",
	"generator", "processor", "validator", "helper", "utils",
	"factory", "builder",
}

// Planner partitions a repository's extracted components into work-plan
// items using the logical/component grouping strategy: one overview item,
// one item per class (with its methods claimed by name or position), one
// item per service-shaped function, and one module item per leftover
// artifact. A component claimed by an earlier pass is invisible to later
// passes.
type Planner struct {
	strategy string
}

func NewPlanner() *Planner {
	return &Planner{strategy: "logical"}
}

// CreateWorkPlan builds the ordered plan for one repository run.
func (p *Planner) CreateWorkPlan(repositoryID uuid.UUID, components []*store.Component, sessionType string) *store.WorkPlan {
	items := []store.WorkPlanItem{{
		DocPath:         overviewDocPath,
		Title:           "Project Overview",
		ComponentIDs:    []string{},
		DocumentType:    store.DocumentTypeOverview,
		Priority:        1,
		EstimatedTokens: overviewTokenEstimate,
	}}
	usedPaths := map[string]bool{overviewDocPath: true}
	claimed := make([]bool, len(components))

	// Pass 1: classes claim their related functions.
	for i, comp := range components {
		if claimed[i] || comp.Type != store.ComponentTypeClass {
			continue
		}
		group := []int{i}
		claimed[i] = true
		for j, other := range components {
			if claimed[j] || other.ParentPath != comp.ParentPath || other.Type != store.ComponentTypeFunction {
				continue
			}
			if sharesName(other.Name, comp.Name) || positionedInside(other, comp) {
				group = append(group, j)
				claimed[j] = true
			}
		}
		docPath := p.uniquePath(DeriveDocPath(comp.Name, comp.ParentPath), comp.ParentPath, usedPaths)
		items = append(items, p.buildItem(docPath, comp.Name, store.DocumentTypeClass, group, components))
	}

	// Pass 2: service-shaped functions.
	for i, comp := range components {
		if claimed[i] || comp.Type != store.ComponentTypeFunction || !isServiceShaped(comp) {
			continue
		}
		group := []int{i}
		claimed[i] = true
		for j, other := range components {
			if claimed[j] || other.ParentPath != comp.ParentPath || other.Type != store.ComponentTypeFunction {
				continue
			}
			if sharesName(other.Name, comp.Name) {
				group = append(group, j)
				claimed[j] = true
			}
		}
		docPath := p.uniquePath(DeriveDocPath(comp.Name, comp.ParentPath), comp.ParentPath, usedPaths)
		items = append(items, p.buildItem(docPath, comp.Name, store.DocumentTypeService, group, components))
	}

	// Pass 3: everything left, grouped by owning artifact.
	byArtifact := map[string][]int{}
	var artifactOrder []string
	for i := range components {
		if claimed[i] {
			continue
		}
		path := components[i].ParentPath
		if _, seen := byArtifact[path]; !seen {
			artifactOrder = append(artifactOrder, path)
		}
		byArtifact[path] = append(byArtifact[path], i)
	}
	for _, path := range artifactOrder {
		group := byArtifact[path]
		base := fileBase(path)
		docPath := p.uniquePath(DeriveDocPath(base, path), path, usedPaths)
		item := p.buildItem(docPath, titleFromFile(base), dominantType(group, components), group, components)
		items = append(items, item)
	}

	sortItems(items)

	total := 0
	for _, item := range items {
		total += item.EstimatedTokens
	}

	return &store.WorkPlan{
		RepositoryID:         repositoryID,
		SessionType:          sessionType,
		Items:                items,
		TotalEstimatedTokens: total,
		Metadata: map[string]interface{}{
			"strategy":        p.strategy,
			"component_count": len(components),
			"item_count":      len(items),
			"languages":       detectLanguages(components),
		},
		CreatedAt: time.Now(),
	}
}

func (p *Planner) buildItem(docPath, title, docType string, group []int, components []*store.Component) store.WorkPlanItem {
	ids := make([]string, 0, len(group))
	tokens := baseItemTokens
	priority := basePriority
	hasExport := false
	hasExported := false

	for _, idx := range group {
		comp := components[idx]
		ids = append(ids, comp.ID)
		tokens += perComponentBase + perRelationTokens*len(comp.Relations)
		if comp.Type == store.ComponentTypeExport {
			hasExport = true
		}
		if comp.IsExported() {
			hasExported = true
		}
	}

	if hasExport {
		priority--
	}
	if hasExported {
		priority--
	}
	if len(group) < 3 {
		priority++
	}
	if strings.Contains(docPath, "util") {
		priority++
	}
	if priority < 1 {
		priority = 1
	}
	if priority > 10 {
		priority = 10
	}

	return store.WorkPlanItem{
		DocPath:         docPath,
		Title:           title,
		ComponentIDs:    ids,
		DocumentType:    docType,
		Priority:        priority,
		EstimatedTokens: tokens,
	}
}

// uniquePath guarantees docPath uniqueness within one plan: collisions get
// the owning file's base name prefixed, then a numeric suffix.
func (p *Planner) uniquePath(docPath, parentPath string, used map[string]bool) string {
	if !used[docPath] {
		used[docPath] = true
		return docPath
	}
	prefixed := sanitize(fileBase(parentPath)) + "_" + docPath
	if !used[prefixed] {
		used[prefixed] = true
		return prefixed
	}
	for i := 2; ; i++ {
		candidate := prefixed + "_" + strconv.Itoa(i)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// sortItems orders by ascending priority, then ascending doc-path segment
// depth. The sort is stable so equal items keep creation order.
func sortItems(items []store.WorkPlanItem) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Priority != items[b].Priority {
			return items[a].Priority < items[b].Priority
		}
		return items[a].SegmentDepth() < items[b].SegmentDepth()
	})
}

// isServiceShaped applies the service classification: a service-like
// keyword in the name, or a well-connected exported function.
func isServiceShaped(comp *store.Component) bool {
	lowered := strings.ToLower(comp.Name)
	for _, keyword := range serviceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	wellConnected := len(comp.Relations) >= 3 || comp.EndLine-comp.StartLine > 10
	return wellConnected && comp.IsExported()
}

func sharesName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if len(la) < 3 || len(lb) < 3 {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// positionedInside is the heuristic method check: the function starts
// after the class declaration and before the class block ends.
func positionedInside(fn, class *store.Component) bool {
	return fn.StartLine > class.StartLine && fn.StartLine <= class.EndLine
}

// dominantType maps the most frequent component type in a group onto a
// document type; mixed bags become module docs.
func dominantType(group []int, components []*store.Component) string {
	counts := map[string]int{}
	for _, idx := range group {
		counts[components[idx].Type]++
	}
	best, bestCount := "", 0
	for compType, count := range counts {
		if count > bestCount {
			best, bestCount = compType, count
		}
	}
	if bestCount*2 <= len(group) {
		return store.DocumentTypeModule
	}
	switch best {
	case store.ComponentTypeClass:
		return store.DocumentTypeClass
	case store.ComponentTypeComponent:
		return store.DocumentTypeComponent
	case store.ComponentTypeService:
		return store.DocumentTypeService
	default:
		return store.DocumentTypeModule
	}
}

func detectLanguages(components []*store.Component) []string {
	seen := map[string]bool{}
	var langs []string
	for _, comp := range components {
		ext := strings.TrimPrefix(filepath.Ext(comp.ParentPath), ".")
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		langs = append(langs, ext)
	}
	sort.Strings(langs)
	return langs
}

// titleFromFile turns "user_service" into "User Service".
func titleFromFile(base string) string {
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	if len(words) == 0 {
		return base
	}
	return strings.Join(words, " ")
}
