package context

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"ai-docgen-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	docs  []*SourceDocument
	err   error
	calls int
}

func (f *fakeSource) RecentDocuments(ctx context.Context, repositoryID uuid.UUID, limit int) ([]*SourceDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.docs) > limit {
		return f.docs[:limit], nil
	}
	return f.docs, nil
}

func testLogger() *log.Logger {
	return log.New(os.Stdout, "[test] ", log.LstdFlags)
}

func doc(path, docType string, age time.Duration) *SourceDocument {
	return &SourceDocument{
		ID:           uuid.New(),
		Title:        path,
		DocumentPath: path,
		Summary:      "summary of " + path,
		DocumentType: docType,
		UpdatedAt:    time.Now().Add(-age),
	}
}

func TestRelevanceScoreScenario(t *testing.T) {
	target := "backend.auth.overview"

	related := RelevanceScore("backend.auth.middleware", target)
	unrelated := RelevanceScore("frontend.ui.button", target)

	// Two of three segments shared, no length mismatch.
	assert.InDelta(t, 2.0/3.0, related, 0.001)
	assert.Equal(t, 0.0, unrelated)
	assert.Greater(t, related, unrelated)
}

func TestRelevanceScoreClampedAtZero(t *testing.T) {
	// No shared prefix and a big segment-count mismatch would go
	// negative without the clamp.
	score := RelevanceScore("a", "x.y.z.w.v.u.t.s.r.q.p.o")
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestRelevanceScoreLengthPenalty(t *testing.T) {
	exact := RelevanceScore("backend.auth", "backend.auth")
	longer := RelevanceScore("backend.auth.tokens.refresh", "backend.auth")

	assert.InDelta(t, 1.0, exact, 0.001)
	// 2 shared of 4 segments minus 0.2 mismatch penalty.
	assert.InDelta(t, 0.3, longer, 0.001)
}

func TestEmptyStoreYieldsEmptyWindow(t *testing.T) {
	loader := NewLoader(&fakeSource{}, testLogger())

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, window.Documents)
	assert.Equal(t, 0, window.TotalTokens)
}

func TestOverviewAlwaysIncludedWithFullScore(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("overview", store.DocumentTypeOverview, time.Hour),
		doc("auth_service", store.DocumentTypeService, time.Minute),
		doc("billing", store.DocumentTypeModule, 2*time.Hour),
	}}
	loader := NewLoader(source, testLogger())

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", nil)
	require.NoError(t, err)
	require.NotEmpty(t, window.Documents)
	assert.Equal(t, "overview", window.Documents[0].DocumentPath)
	assert.Equal(t, 1.0, window.Documents[0].RelevanceScore)
}

func TestOverviewDoesNotConsumeBudget(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("overview", store.DocumentTypeOverview, time.Hour),
		doc("a", store.DocumentTypeModule, time.Minute),
		doc("b", store.DocumentTypeModule, 2*time.Minute),
	}}
	loader := NewLoader(source, testLogger())

	cfg := DefaultConfig()
	cfg.Strategy = StrategyRecent
	cfg.MaxDocuments = 2

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", &cfg)
	require.NoError(t, err)
	// overview + two recent documents
	assert.Len(t, window.Documents, 3)
}

func TestRecentStrategyScores(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("newest", store.DocumentTypeModule, time.Minute),
		doc("older", store.DocumentTypeModule, time.Hour),
	}}
	loader := NewLoader(source, testLogger())

	cfg := DefaultConfig()
	cfg.Strategy = StrategyRecent

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", &cfg)
	require.NoError(t, err)
	require.Len(t, window.Documents, 2)
	assert.Equal(t, "newest", window.Documents[0].DocumentPath)
	for _, d := range window.Documents {
		assert.Equal(t, 0.8, d.RelevanceScore)
	}
}

func TestRelevantStrategyOrdersByScore(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("frontend.ui.button", store.DocumentTypeComponent, time.Minute),
		doc("backend.auth.middleware", store.DocumentTypeModule, time.Hour),
	}}
	loader := NewLoader(source, testLogger())

	cfg := DefaultConfig()
	cfg.Strategy = StrategyRelevant
	cfg.IncludeOverview = false

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "backend.auth.overview", &cfg)
	require.NoError(t, err)
	require.Len(t, window.Documents, 2)
	assert.Equal(t, "backend.auth.middleware", window.Documents[0].DocumentPath)
}

func TestMixedStrategyDeduplicates(t *testing.T) {
	shared := doc("backend.auth.tokens", store.DocumentTypeModule, time.Minute)
	source := &fakeSource{docs: []*SourceDocument{
		shared,
		doc("frontend.ui", store.DocumentTypeModule, time.Hour),
	}}
	loader := NewLoader(source, testLogger())

	cfg := DefaultConfig()
	cfg.Strategy = StrategyMixed
	cfg.IncludeOverview = false
	cfg.MaxDocuments = 10

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "backend.auth.overview", &cfg)
	require.NoError(t, err)

	seen := map[uuid.UUID]int{}
	for _, d := range window.Documents {
		seen[d.ID]++
	}
	assert.Equal(t, 1, seen[shared.ID])
}

func TestCacheHitSkipsRecomputation(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("a", store.DocumentTypeModule, time.Minute),
	}}
	loader := NewLoader(source, testLogger())
	repoID := uuid.New()

	_, err := loader.LoadContextWindow(context.Background(), repoID, "target", nil)
	require.NoError(t, err)
	_, err = loader.LoadContextWindow(context.Background(), repoID, "target", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls)
}

func TestCacheKeyVariesWithParameters(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("a", store.DocumentTypeModule, time.Minute),
	}}
	loader := NewLoader(source, testLogger())
	repoID := uuid.New()

	_, err := loader.LoadContextWindow(context.Background(), repoID, "one", nil)
	require.NoError(t, err)
	_, err = loader.LoadContextWindow(context.Background(), repoID, "two", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	source := &fakeSource{docs: []*SourceDocument{
		doc("a", store.DocumentTypeModule, time.Minute),
	}}
	loader := NewLoader(source, testLogger())
	repoID := uuid.New()

	_, err := loader.LoadContextWindow(context.Background(), repoID, "t", nil)
	require.NoError(t, err)
	loader.Invalidate(repoID)
	_, err = loader.LoadContextWindow(context.Background(), repoID, "t", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls)
}

func TestSourceErrorPropagates(t *testing.T) {
	loader := NewLoader(&fakeSource{err: errors.New("db down")}, testLogger())

	_, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", nil)
	assert.Error(t, err)
}

func TestTokenEstimateInformational(t *testing.T) {
	d := doc("mod", store.DocumentTypeModule, time.Minute)
	d.Title = "Title"
	d.Summary = "A short summary."
	source := &fakeSource{docs: []*SourceDocument{d}}
	loader := NewLoader(source, testLogger())

	window, err := loader.LoadContextWindow(context.Background(), uuid.New(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, store.EstimateTokens(d.Title, d.Summary), window.TotalTokens)
}
