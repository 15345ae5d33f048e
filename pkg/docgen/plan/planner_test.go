package plan

import (
	"testing"

	"ai-docgen-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func component(path, compType, name string, start, end int, relations int) *store.Component {
	c := &store.Component{
		ID:         store.ComponentID(path, compType, name),
		Name:       name,
		Type:       compType,
		ParentPath: path,
		StartLine:  start,
		EndLine:    end,
		Metadata:   map[string]interface{}{},
	}
	for i := 0; i < relations; i++ {
		c.AddRelation(store.RelationCalls, "dep", 0.8)
	}
	return c
}

func TestPlanAlwaysHasExactlyOneOverview(t *testing.T) {
	p := NewPlanner()
	repoID := uuid.New()

	plan := p.CreateWorkPlan(repoID, nil, store.SessionTypeFull)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, store.DocumentTypeOverview, plan.Items[0].DocumentType)
	assert.Empty(t, plan.Items[0].ComponentIDs)
	assert.Equal(t, 1, plan.Items[0].Priority)

	plan = p.CreateWorkPlan(repoID, []*store.Component{
		component("auth.ts", store.ComponentTypeClass, "AuthService", 1, 40, 2),
	}, store.SessionTypeFull)

	overviews := 0
	for _, item := range plan.Items {
		if item.DocumentType == store.DocumentTypeOverview {
			overviews++
			assert.Empty(t, item.ComponentIDs)
		}
	}
	assert.Equal(t, 1, overviews)
	assert.Equal(t, store.DocumentTypeOverview, plan.Items[0].DocumentType)
}

func TestClassClaimsMethodsByPosition(t *testing.T) {
	p := NewPlanner()
	components := []*store.Component{
		component("auth.ts", store.ComponentTypeClass, "AuthService", 3, 50, 1),
		component("auth.ts", store.ComponentTypeFunction, "login", 10, 20, 0),
		component("auth.ts", store.ComponentTypeFunction, "logout", 25, 30, 0),
		component("auth.ts", store.ComponentTypeFunction, "unrelated", 60, 70, 0),
	}

	plan := p.CreateWorkPlan(uuid.New(), components, store.SessionTypeFull)

	var classItem *store.WorkPlanItem
	for i := range plan.Items {
		if plan.Items[i].DocumentType == store.DocumentTypeClass {
			classItem = &plan.Items[i]
		}
	}
	require.NotNil(t, classItem)
	assert.Equal(t, "authservice", classItem.DocPath)
	assert.Len(t, classItem.ComponentIDs, 3)
	assert.NotContains(t, classItem.ComponentIDs, components[3].ID)
}

func TestClassPassRunsBeforeServicePass(t *testing.T) {
	p := NewPlanner()
	// userManager would qualify as a service, but it sits inside the
	// class block so the class pass claims it first.
	components := []*store.Component{
		component("user.ts", store.ComponentTypeClass, "UserStore", 1, 100, 0),
		component("user.ts", store.ComponentTypeFunction, "userManager", 10, 90, 4),
	}

	plan := p.CreateWorkPlan(uuid.New(), components, store.SessionTypeFull)

	for _, item := range plan.Items {
		assert.NotEqual(t, store.DocumentTypeService, item.DocumentType)
	}
}

func TestServiceClassification(t *testing.T) {
	p := NewPlanner()
	svc := component("notify.ts", store.ComponentTypeFunction, "notificationHandler", 1, 5, 0)
	plain := component("notify.ts", store.ComponentTypeFunction, "tiny", 7, 8, 0)

	plan := p.CreateWorkPlan(uuid.New(), []*store.Component{svc, plain}, store.SessionTypeFull)

	var serviceItem *store.WorkPlanItem
	for i := range plan.Items {
		if plan.Items[i].DocumentType == store.DocumentTypeService {
			serviceItem = &plan.Items[i]
		}
	}
	require.NotNil(t, serviceItem)
	assert.Contains(t, serviceItem.ComponentIDs, svc.ID)
	// "tiny" shares no name substring: it falls to the module pass.
	assert.NotContains(t, serviceItem.ComponentIDs, plain.ID)
}

func TestExportedWellConnectedFunctionIsService(t *testing.T) {
	fn := component("calc.ts", store.ComponentTypeFunction, "recompute", 1, 20, 3)
	fn.Metadata["isExported"] = true
	assert.True(t, isServiceShaped(fn))

	unexported := component("calc.ts", store.ComponentTypeFunction, "recompute", 1, 20, 3)
	assert.False(t, isServiceShaped(unexported))
}

func TestLeftoversGroupedByArtifact(t *testing.T) {
	p := NewPlanner()
	components := []*store.Component{
		component("types.ts", store.ComponentTypeType, "User", 1, 1, 0),
		component("types.ts", store.ComponentTypeType, "Account", 2, 2, 0),
		component("config.ts", store.ComponentTypeConstant, "DEFAULTS", 1, 1, 0),
	}

	plan := p.CreateWorkPlan(uuid.New(), components, store.SessionTypeFull)

	// overview + one module item per artifact
	require.Len(t, plan.Items, 3)
	pathCounts := map[string]int{}
	for _, item := range plan.Items {
		pathCounts[item.DocumentType]++
	}
	assert.Equal(t, 2, pathCounts[store.DocumentTypeModule])
}

func TestDocPathsUniqueWithinPlan(t *testing.T) {
	p := NewPlanner()
	components := []*store.Component{
		component("a/auth.ts", store.ComponentTypeClass, "Session", 1, 10, 0),
		component("b/token.ts", store.ComponentTypeClass, "Session", 1, 10, 0),
	}

	plan := p.CreateWorkPlan(uuid.New(), components, store.SessionTypeFull)

	seen := map[string]bool{}
	for _, item := range plan.Items {
		assert.False(t, seen[item.DocPath], "duplicate doc path %s", item.DocPath)
		seen[item.DocPath] = true
	}
}

func TestTokenEstimate(t *testing.T) {
	p := NewPlanner()
	comp := component("x.ts", store.ComponentTypeClass, "Thing", 1, 10, 2)

	plan := p.CreateWorkPlan(uuid.New(), []*store.Component{comp}, store.SessionTypeFull)

	var classItem *store.WorkPlanItem
	for i := range plan.Items {
		if plan.Items[i].DocumentType == store.DocumentTypeClass {
			classItem = &plan.Items[i]
		}
	}
	require.NotNil(t, classItem)
	// 200 base + (50 + 20*2) for the single component
	assert.Equal(t, 290, classItem.EstimatedTokens)
	assert.Equal(t, 500+290, plan.TotalEstimatedTokens)
}

func TestPriorityBounds(t *testing.T) {
	p := NewPlanner()
	exported := component("util/helpers.ts", store.ComponentTypeExport, "utilExport", 1, 2, 0)
	exported.Metadata["isExported"] = true

	plan := p.CreateWorkPlan(uuid.New(), []*store.Component{exported}, store.SessionTypeFull)

	for _, item := range plan.Items {
		assert.GreaterOrEqual(t, item.Priority, 1)
		assert.LessOrEqual(t, item.Priority, 10)
	}
}

func TestItemOrdering(t *testing.T) {
	p := NewPlanner()
	components := []*store.Component{
		component("deep.ts", store.ComponentTypeClass, "AlphaBetaGamma", 1, 10, 0),
		component("svc.ts", store.ComponentTypeClass, "BigService", 1, 10, 0),
	}

	plan := p.CreateWorkPlan(uuid.New(), components, store.SessionTypeFull)

	for i := 1; i < len(plan.Items); i++ {
		prev, cur := plan.Items[i-1], plan.Items[i]
		if prev.Priority == cur.Priority {
			assert.LessOrEqual(t, prev.SegmentDepth(), cur.SegmentDepth())
		} else {
			assert.Less(t, prev.Priority, cur.Priority)
		}
	}
}

func TestDeriveDocPath(t *testing.T) {
	assert.Equal(t, "authservice", DeriveDocPath("AuthService", "auth.ts"))
	assert.Equal(t, "auth_service", DeriveDocPath("auth-service", "auth.ts"))
	assert.Equal(t, "server_main", DeriveDocPath("main", "server.ts"))
	assert.Equal(t, "helpers_ab", DeriveDocPath("ab", "helpers.ts"))
	assert.Equal(t, "private_name", DeriveDocPath("__private_name__", "x.ts"))
	assert.Equal(t, "handler", DeriveDocPath("@handler", "x.ts"))
}
