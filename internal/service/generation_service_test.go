package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/contract"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
	docContext "ai-docgen-be/pkg/docgen/context"
	"ai-docgen-be/pkg/docgen/extract"
	"ai-docgen-be/pkg/docgen/plan"
	"ai-docgen-be/pkg/llm"
	"ai-docgen-be/pkg/store"
	"ai-docgen-be/pkg/vcs"
)

// --- in-memory persistence fakes ---

type fakeStore struct {
	repositories map[uuid.UUID]*entity.Repository
	artifacts    map[string]*entity.Artifact
	components   []*entity.Component
	documents    map[uuid.UUID]*entity.Document
	links        []*entity.DocumentLink
	sessions     map[uuid.UUID]*entity.GenerationSession
	metrics      []*entity.GenerationMetric
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		repositories: map[uuid.UUID]*entity.Repository{},
		artifacts:    map[string]*entity.Artifact{},
		documents:    map[uuid.UUID]*entity.Document{},
		sessions:     map[uuid.UUID]*entity.GenerationSession{},
	}
}

func (fs *fakeStore) documentByPath(repositoryId uuid.UUID, path string) *entity.Document {
	for _, doc := range fs.documents {
		if doc.RepositoryId == repositoryId && doc.DocumentPath == path {
			return doc
		}
	}
	return nil
}

type fakeRepositoryRepo struct{ fs *fakeStore }

func (r *fakeRepositoryRepo) Create(_ context.Context, repo *entity.Repository) error {
	r.fs.repositories[repo.Id] = repo
	return nil
}

func (r *fakeRepositoryRepo) Update(_ context.Context, repo *entity.Repository) error {
	r.fs.repositories[repo.Id] = repo
	return nil
}

func (r *fakeRepositoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.fs.repositories, id)
	return nil
}

func (r *fakeRepositoryRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Repository, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if repo, found := r.fs.repositories[byID.ID]; found {
				return repo, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRepositoryRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Repository, error) {
	var out []*entity.Repository
	for _, repo := range r.fs.repositories {
		out = append(out, repo)
	}
	return out, nil
}

func (r *fakeRepositoryRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.fs.repositories)), nil
}

type fakeArtifactRepo struct{ fs *fakeStore }

func (r *fakeArtifactRepo) Upsert(_ context.Context, artifact *entity.Artifact) error {
	r.fs.artifacts[artifact.RepositoryId.String()+"|"+artifact.Path] = artifact
	return nil
}

func (r *fakeArtifactRepo) UpsertAll(ctx context.Context, artifacts []*entity.Artifact) error {
	for _, artifact := range artifacts {
		if err := r.Upsert(ctx, artifact); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeArtifactRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Artifact, error) {
	return nil, nil
}

func (r *fakeArtifactRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Artifact, error) {
	var out []*entity.Artifact
	for _, artifact := range r.fs.artifacts {
		out = append(out, artifact)
	}
	return out, nil
}

func (r *fakeArtifactRepo) DeleteAllByRepositoryId(_ context.Context, repositoryId uuid.UUID) error {
	for key, artifact := range r.fs.artifacts {
		if artifact.RepositoryId == repositoryId {
			delete(r.fs.artifacts, key)
		}
	}
	return nil
}

func (r *fakeArtifactRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.fs.artifacts)), nil
}

type fakeComponentRepo struct{ fs *fakeStore }

func (r *fakeComponentRepo) ReplaceAll(_ context.Context, repositoryId uuid.UUID, components []*entity.Component) error {
	var kept []*entity.Component
	for _, comp := range r.fs.components {
		if comp.RepositoryId != repositoryId {
			kept = append(kept, comp)
		}
	}
	seen := map[string]bool{}
	for _, comp := range components {
		if seen[comp.Id] {
			continue
		}
		seen[comp.Id] = true
		kept = append(kept, comp)
	}
	r.fs.components = kept
	return nil
}

func (r *fakeComponentRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Component, error) {
	return r.fs.components, nil
}

func (r *fakeComponentRepo) FindByIds(_ context.Context, repositoryId uuid.UUID, ids []string) ([]*entity.Component, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.Component
	for _, comp := range r.fs.components {
		if comp.RepositoryId == repositoryId && wanted[comp.Id] {
			out = append(out, comp)
		}
	}
	return out, nil
}

func (r *fakeComponentRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.fs.components)), nil
}

type fakeDocumentRepo struct{ fs *fakeStore }

func (r *fakeDocumentRepo) Upsert(_ context.Context, doc *entity.Document) error {
	if existing := r.fs.documentByPath(doc.RepositoryId, doc.DocumentPath); existing != nil {
		doc.Id = existing.Id
		doc.CreatedAt = existing.CreatedAt
	} else if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	now := time.Now()
	doc.UpdatedAt = &now
	stored := *doc
	r.fs.documents[doc.Id] = &stored
	return nil
}

func (r *fakeDocumentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if doc, found := r.fs.documents[byID.ID]; found {
				return doc, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.fs.documents {
		match := true
		for _, spec := range specs {
			if byRepo, ok := spec.(specification.ByRepositoryID); ok && doc.RepositoryId != byRepo.RepositoryID {
				match = false
			}
		}
		if match {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindRecent(_ context.Context, repositoryId uuid.UUID, limit int) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.fs.documents {
		if doc.RepositoryId == repositoryId {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		at, bt := out[a].CreatedAt, out[b].CreatedAt
		if out[a].UpdatedAt != nil {
			at = *out[a].UpdatedAt
		}
		if out[b].UpdatedAt != nil {
			bt = *out[b].UpdatedAt
		}
		return at.After(bt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeDocumentRepo) DeleteByIds(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.fs.documents, id)
	}
	return nil
}

func (r *fakeDocumentRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.fs.documents)), nil
}

type fakeLinkRepo struct{ fs *fakeStore }

func (r *fakeLinkRepo) CreateAll(_ context.Context, links []*entity.DocumentLink) error {
	r.fs.links = append(r.fs.links, links...)
	return nil
}

func (r *fakeLinkRepo) DeleteBySourceDocumentId(_ context.Context, sourceDocumentId uuid.UUID) error {
	var kept []*entity.DocumentLink
	for _, link := range r.fs.links {
		if link.SourceDocumentId != sourceDocumentId {
			kept = append(kept, link)
		}
	}
	r.fs.links = kept
	return nil
}

func (r *fakeLinkRepo) DeleteByDocumentIds(_ context.Context, documentIds []uuid.UUID) error {
	wanted := map[uuid.UUID]bool{}
	for _, id := range documentIds {
		wanted[id] = true
	}
	var kept []*entity.DocumentLink
	for _, link := range r.fs.links {
		if !wanted[link.SourceDocumentId] && !wanted[link.TargetDocumentId] {
			kept = append(kept, link)
		}
	}
	r.fs.links = kept
	return nil
}

func (r *fakeLinkRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.DocumentLink, error) {
	return r.fs.links, nil
}

type fakeSessionRepo struct{ fs *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.GenerationSession) error {
	r.fs.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.GenerationSession) error {
	r.fs.sessions[session.Id] = session
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if session, found := r.fs.sessions[byID.ID]; found {
				return session, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.GenerationSession, error) {
	var out []*entity.GenerationSession
	for _, session := range r.fs.sessions {
		out = append(out, session)
	}
	return out, nil
}

type fakeMetricRepo struct{ fs *fakeStore }

func (r *fakeMetricRepo) Create(_ context.Context, metric *entity.GenerationMetric) error {
	r.fs.metrics = append(r.fs.metrics, metric)
	return nil
}

func (r *fakeMetricRepo) DeleteByDocumentIds(_ context.Context, documentIds []uuid.UUID) error {
	wanted := map[uuid.UUID]bool{}
	for _, id := range documentIds {
		wanted[id] = true
	}
	var kept []*entity.GenerationMetric
	for _, metric := range r.fs.metrics {
		if !wanted[metric.DocumentId] {
			kept = append(kept, metric)
		}
	}
	r.fs.metrics = kept
	return nil
}

func (r *fakeMetricRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.GenerationMetric, error) {
	return r.fs.metrics, nil
}

type fakeUnitOfWork struct{ fs *fakeStore }

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) RepositoryRepository() contract.RepositoryRepository {
	return &fakeRepositoryRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) ArtifactRepository() contract.ArtifactRepository {
	return &fakeArtifactRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) ComponentRepository() contract.ComponentRepository {
	return &fakeComponentRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) DocumentLinkRepository() contract.DocumentLinkRepository {
	return &fakeLinkRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) GenerationSessionRepository() contract.GenerationSessionRepository {
	return &fakeSessionRepo{fs: u.fs}
}

func (u *fakeUnitOfWork) GenerationMetricRepository() contract.GenerationMetricRepository {
	return &fakeMetricRepo{fs: u.fs}
}

type fakeFactory struct{ fs *fakeStore }

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{fs: f.fs}
}

// --- pipeline collaborator fakes ---

type fakeVCSAdapter struct {
	files   map[string]string
	listErr error
}

func (a *fakeVCSAdapter) ListFiles(_ context.Context, _, _ string) ([]vcs.FileInfo, error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	paths := make([]string, 0, len(a.files))
	for path := range a.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	out := make([]vcs.FileInfo, 0, len(paths))
	for _, path := range paths {
		out = append(out, vcs.FileInfo{
			Path:        path,
			Size:        int64(len(a.files[path])),
			ContentHash: fmt.Sprintf("hash-%s", path),
		})
	}
	return out, nil
}

func (a *fakeVCSAdapter) GetFileContent(_ context.Context, _, path string) (*vcs.FileContent, error) {
	content, found := a.files[path]
	if !found {
		return nil, nil
	}
	return &vcs.FileContent{Content: content, Size: int64(len(content))}, nil
}

type fakeLLM struct {
	calls      int
	failSubstr string
}

func (p *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (*llm.Completion, error) {
	prompt := ""
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return p.Complete(ctx, prompt, options...)
}

func (p *fakeLLM) Complete(_ context.Context, prompt string, _ ...llm.Option) (*llm.Completion, error) {
	p.calls++
	if p.failSubstr != "" && strings.Contains(prompt, p.failSubstr) {
		return nil, errors.New("model unavailable")
	}
	return &llm.Completion{
		Text:         fmt.Sprintf("# Generated\n\nDocumentation body for call %d.", p.calls),
		TokensIn:     100,
		TokensOut:    50,
		CostEstimate: 0.01,
	}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(_, _ string, _ map[string]interface{}) {}
func (noopLogger) Info(_, _ string, _ map[string]interface{})  {}
func (noopLogger) Warn(_, _ string, _ map[string]interface{})  {}
func (noopLogger) Error(_, _ string, _ map[string]interface{}) {}
func (noopLogger) Sync() error                                 { return nil }
func (noopLogger) GetLogs(_ string, _, _ int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(_ string) (*logger.LogEntry, error) { return nil, nil }

// --- harness ---

const widgetSource = `import os

class WidgetService:
    def create(self, name):
        return name

    def delete(self, widget_id):
        return widget_id
`

type pipelineHarness struct {
	fs      *fakeStore
	repoId  uuid.UUID
	vcsFake *fakeVCSAdapter
	llmFake *fakeLLM
	svc     IGenerationService
}

func newPipelineHarness(files map[string]string) *pipelineHarness {
	fs := newFakeStore()
	factory := &fakeFactory{fs: fs}

	repoId := uuid.New()
	fs.repositories[repoId] = &entity.Repository{
		Id:            repoId,
		Name:          "widget-repo",
		Provider:      entity.RepositoryProviderLocal,
		Ref:           "/tmp/widget-repo",
		DefaultBranch: "main",
		Status:        entity.RepositoryStatusGenerating,
		CreatedAt:     time.Now(),
	}

	vcsFake := &fakeVCSAdapter{files: files}
	llmFake := &fakeLLM{}
	loader := docContext.NewLoader(NewDocumentSource(factory), nil)

	svc := NewGenerationService(
		factory,
		map[entity.RepositoryProvider]vcs.Adapter{entity.RepositoryProviderLocal: vcsFake},
		extract.NewDefaultRegistry(),
		plan.NewPlanner(),
		loader,
		llmFake,
		"test-model",
		noopLogger{},
	)

	return &pipelineHarness{fs: fs, repoId: repoId, vcsFake: vcsFake, llmFake: llmFake, svc: svc}
}

// --- tests ---

func TestRunEmptyRepositoryGeneratesOverviewOnly(t *testing.T) {
	h := newPipelineHarness(map[string]string{})

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})

	require.True(t, result.Success)
	assert.Equal(t, 1, result.DocumentsPlanned)
	assert.Equal(t, 1, result.DocumentsGenerated)
	assert.Equal(t, 0, result.Metrics.ArtifactsDiscovered)
	assert.Equal(t, 0, result.Metrics.ComponentsExtracted)

	overview := h.fs.documentByPath(h.repoId, "overview")
	require.NotNil(t, overview)
	assert.Equal(t, store.DocumentTypeOverview, overview.DocumentType)
	assert.NotEmpty(t, overview.Summary)
}

func TestRunFullPipeline(t *testing.T) {
	h := newPipelineHarness(map[string]string{"widgets/service.py": widgetSource})

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})

	require.True(t, result.Success)
	assert.Equal(t, 1, result.Metrics.ArtifactsDiscovered)
	assert.Greater(t, result.Metrics.ComponentsExtracted, 0)
	assert.Equal(t, 2, result.DocumentsPlanned)
	assert.Equal(t, 2, result.DocumentsGenerated)
	assert.InDelta(t, 0.02, result.EstimatedCost, 1e-9)

	// The class document is generated after the overview, so its context
	// window saw the overview and produced one link.
	assert.Equal(t, 1, result.LinksCreated)
	require.Len(t, h.fs.links, 1)
	overview := h.fs.documentByPath(h.repoId, "overview")
	require.NotNil(t, overview)
	assert.Equal(t, overview.Id, h.fs.links[0].TargetDocumentId)

	assert.Len(t, h.fs.metrics, 2)
	assert.Len(t, h.fs.artifacts, 1)
}

func TestRunSessionBookkeeping(t *testing.T) {
	h := newPipelineHarness(map[string]string{"widgets/service.py": widgetSource})

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})
	require.True(t, result.Success)

	session := h.fs.sessions[result.SessionID]
	require.NotNil(t, session)
	assert.Equal(t, entity.SessionStatusCompleted, session.Status)
	assert.Equal(t, session.Total, session.Completed)
	assert.Equal(t, store.SessionTypeFull, session.SessionType)
	assert.Empty(t, session.CurrentItem)
	require.NotNil(t, session.CompletedAt)
	require.NotNil(t, session.WorkPlan)
	assert.Len(t, session.WorkPlan.Items, session.Total)

	repo := h.fs.repositories[h.repoId]
	assert.Equal(t, entity.RepositoryStatusCompleted, repo.Status)
	require.NotNil(t, repo.LastSessionId)
	assert.Equal(t, result.SessionID, *repo.LastSessionId)
}

func TestRunItemFailureDoesNotAbortRun(t *testing.T) {
	h := newPipelineHarness(map[string]string{"widgets/service.py": widgetSource})
	// The marker only appears in the per-component prompt, never in the
	// overview prompt.
	h.llmFake.failSubstr = "widgets/service.py, lines"

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})

	require.True(t, result.Success)
	assert.Equal(t, 2, result.DocumentsPlanned)
	assert.Equal(t, 1, result.DocumentsGenerated)

	var failed []store.GenerationResult
	for _, item := range result.Items {
		if !item.Success {
			failed = append(failed, item)
		}
	}
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].Error, "model unavailable")

	session := h.fs.sessions[result.SessionID]
	require.NotNil(t, session)
	assert.Equal(t, entity.SessionStatusCompleted, session.Status)
	assert.Equal(t, session.Total, session.Completed)
}

func TestRunPrunesStaleDocuments(t *testing.T) {
	h := newPipelineHarness(map[string]string{})

	staleId := uuid.New()
	h.fs.documents[staleId] = &entity.Document{
		Id:           staleId,
		RepositoryId: h.repoId,
		DocumentPath: "old_module",
		Title:        "Old Module",
		Content:      "# Old Module\n\nNo longer planned.",
		DocumentType: store.DocumentTypeModule,
		CreatedAt:    time.Now().Add(-time.Hour),
	}
	h.fs.links = append(h.fs.links, &entity.DocumentLink{
		Id:               uuid.New(),
		RepositoryId:     h.repoId,
		SourceDocumentId: staleId,
		TargetDocumentId: uuid.New(),
		LinkType:         "references",
	})
	h.fs.metrics = append(h.fs.metrics, &entity.GenerationMetric{
		Id:           uuid.New(),
		RepositoryId: h.repoId,
		DocumentId:   staleId,
		SessionId:    uuid.New(),
	})

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})

	require.True(t, result.Success)
	assert.Nil(t, h.fs.documentByPath(h.repoId, "old_module"))
	assert.Empty(t, h.fs.links)
	// Only the freshly generated overview survives, with its one metric.
	assert.Len(t, h.fs.documents, 1)
	overview := h.fs.documentByPath(h.repoId, "overview")
	require.NotNil(t, overview)
	require.Len(t, h.fs.metrics, 1)
	assert.Equal(t, overview.Id, h.fs.metrics[0].DocumentId)
}

func TestRunSkipPruningKeepsStaleDocuments(t *testing.T) {
	h := newPipelineHarness(map[string]string{})

	staleId := uuid.New()
	h.fs.documents[staleId] = &entity.Document{
		Id:           staleId,
		RepositoryId: h.repoId,
		DocumentPath: "old_module",
		Title:        "Old Module",
		Content:      "# Old Module",
		DocumentType: store.DocumentTypeModule,
		CreatedAt:    time.Now().Add(-time.Hour),
	}

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{SkipPruning: true})

	require.True(t, result.Success)
	assert.NotNil(t, h.fs.documentByPath(h.repoId, "old_module"))
	assert.Len(t, h.fs.documents, 2)
}

func TestRunIsIdempotent(t *testing.T) {
	h := newPipelineHarness(map[string]string{"widgets/service.py": widgetSource})

	first := h.svc.Run(context.Background(), h.repoId, RunOptions{})
	require.True(t, first.Success)

	overview := h.fs.documentByPath(h.repoId, "overview")
	require.NotNil(t, overview)
	firstOverviewId := overview.Id
	firstCount := len(h.fs.documents)

	second := h.svc.Run(context.Background(), h.repoId, RunOptions{})
	require.True(t, second.Success)

	assert.Equal(t, first.DocumentsPlanned, second.DocumentsPlanned)
	assert.Len(t, h.fs.documents, firstCount)
	overview = h.fs.documentByPath(h.repoId, "overview")
	require.NotNil(t, overview)
	assert.Equal(t, firstOverviewId, overview.Id)
	assert.Len(t, h.fs.artifacts, 1)
}

func TestRunUnknownRepositoryFails(t *testing.T) {
	h := newPipelineHarness(map[string]string{})

	result := h.svc.Run(context.Background(), uuid.New(), RunOptions{})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "not found")
	assert.Zero(t, result.DocumentsGenerated)
}

func TestRunDiscoveryFailureMarksRepositoryFailed(t *testing.T) {
	h := newPipelineHarness(map[string]string{})
	h.vcsFake.listErr = errors.New("remote unreachable")

	result := h.svc.Run(context.Background(), h.repoId, RunOptions{})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "remote unreachable")
	assert.Equal(t, entity.RepositoryStatusFailed, h.fs.repositories[h.repoId].Status)
	assert.Empty(t, h.fs.sessions)
}
