package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-docgen-be/internal/constant"
	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/specification"
	"ai-docgen-be/internal/repository/unitofwork"
	docctx "ai-docgen-be/pkg/docgen/context"
	"ai-docgen-be/pkg/docgen/extract"
	"ai-docgen-be/pkg/docgen/plan"
	"ai-docgen-be/pkg/docgen/progress"
	"ai-docgen-be/pkg/llm"
	"ai-docgen-be/pkg/store"
	"ai-docgen-be/pkg/vcs"
)

type RunOptions struct {
	SessionType string // defaults to full
	SkipPruning bool
}

type IGenerationService interface {
	// Run executes the whole pipeline for one repository. The result is
	// always populated, even when the run fails at a phase boundary.
	Run(ctx context.Context, repositoryId uuid.UUID, opts RunOptions) *store.RunResult
}

type generationService struct {
	uowFactory    unitofwork.RepositoryFactory
	vcsAdapters   map[entity.RepositoryProvider]vcs.Adapter
	registry      *extract.Registry
	planner       *plan.Planner
	contextLoader *docctx.Loader
	llmProvider   llm.LLMProvider
	modelName     string
	logger        logger.ILogger
	publishers    []progress.Publisher
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	vcsAdapters map[entity.RepositoryProvider]vcs.Adapter,
	registry *extract.Registry,
	planner *plan.Planner,
	contextLoader *docctx.Loader,
	llmProvider llm.LLMProvider,
	modelName string,
	log logger.ILogger,
	publishers ...progress.Publisher,
) IGenerationService {
	return &generationService{
		uowFactory:    uowFactory,
		vcsAdapters:   vcsAdapters,
		registry:      registry,
		planner:       planner,
		contextLoader: contextLoader,
		llmProvider:   llmProvider,
		modelName:     modelName,
		logger:        log,
		publishers:    publishers,
	}
}

func (s *generationService) Run(ctx context.Context, repositoryId uuid.UUID, opts RunOptions) *store.RunResult {
	sessionType := opts.SessionType
	if sessionType == "" {
		sessionType = store.SessionTypeFull
	}

	sessionId := uuid.New()
	sink := progress.NewSink(sessionId.String(), s.publishers...)
	result := &store.RunResult{SessionID: sessionId}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	repo, err := uow.RepositoryRepository().FindOne(ctx, specification.ByID{ID: repositoryId})
	if err != nil {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("load repository: %w", err))
	}
	if repo == nil {
		return s.fail(ctx, uow, nil, nil, result, sink, fmt.Errorf("repository %s not found", repositoryId))
	}

	adapter, ok := s.vcsAdapters[repo.Provider]
	if !ok {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("no VCS adapter for provider %s", repo.Provider))
	}

	// Phase 1: discovery.
	sink.Info("discovering files for %s", repo.Name)
	discoveryStart := time.Now()

	files, err := adapter.ListFiles(ctx, repo.Ref, repo.DefaultBranch)
	if err != nil {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("list files: %w", err))
	}

	artifacts := make([]*store.Artifact, 0, len(files))
	artifactRows := make([]*entity.Artifact, 0, len(files))
	for _, f := range files {
		artifacts = append(artifacts, &store.Artifact{
			ID:          uuid.NewString(),
			Path:        f.Path,
			Language:    vcs.InferLanguage(f.Path),
			Size:        f.Size,
			ContentHash: f.ContentHash,
			Type:        vcs.InferArtifactType(f.Path),
		})
		artifactRows = append(artifactRows, &entity.Artifact{
			RepositoryId: repositoryId,
			Path:         f.Path,
			Language:     vcs.InferLanguage(f.Path),
			ArtifactType: vcs.InferArtifactType(f.Path),
			Size:         f.Size,
			ContentHash:  f.ContentHash,
			CreatedAt:    time.Now(),
		})
	}
	if err := uow.ArtifactRepository().UpsertAll(ctx, artifactRows); err != nil {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("persist artifacts: %w", err))
	}

	result.Metrics.DiscoveryDuration = time.Since(discoveryStart)
	result.Metrics.ArtifactsDiscovered = len(artifacts)
	sink.Info("discovered %d artifacts", len(artifacts))

	// Phase 2: extraction.
	extractionStart := time.Now()
	var components []*store.Component
	for _, artifact := range artifacts {
		content, err := adapter.GetFileContent(ctx, repo.Ref, artifact.Path)
		if err != nil || content == nil {
			sink.Error("skipping %s: content unavailable", artifact.Path)
			continue
		}
		artifact.Content = content.Content
		components = append(components, s.registry.Extract(artifact)...)
	}

	componentRows := make([]*entity.Component, len(components))
	for i, c := range components {
		componentRows[i] = &entity.Component{
			Id:            c.ID,
			RepositoryId:  repositoryId,
			Name:          c.Name,
			ComponentType: c.Type,
			ParentPath:    c.ParentPath,
			StartLine:     c.StartLine,
			EndLine:       c.EndLine,
			Relations:     c.Relations,
			Metadata:      c.Metadata,
			CreatedAt:     time.Now(),
		}
	}
	if err := uow.ComponentRepository().ReplaceAll(ctx, repositoryId, componentRows); err != nil {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("persist components: %w", err))
	}

	result.Metrics.ExtractionDuration = time.Since(extractionStart)
	result.Metrics.ComponentsExtracted = len(components)
	sink.Info("extracted %d components", len(components))

	// Phase 3: planning.
	planningStart := time.Now()
	workPlan := s.planner.CreateWorkPlan(repositoryId, components, sessionType)

	session := &entity.GenerationSession{
		Id:           sessionId,
		RepositoryId: repositoryId,
		SessionType:  sessionType,
		Status:       entity.SessionStatusGenerating,
		WorkPlan:     workPlan,
		Total:        len(workPlan.Items),
		StartedAt:    time.Now(),
	}
	if err := uow.GenerationSessionRepository().Create(ctx, session); err != nil {
		return s.fail(ctx, uow, nil, repo, result, sink, fmt.Errorf("create session: %w", err))
	}

	result.DocumentsPlanned = len(workPlan.Items)
	result.Metrics.PlanningDuration = time.Since(planningStart)
	sink.Info("planned %d documents", len(workPlan.Items))

	// Phase 4: generation.
	generationStart := time.Now()

	if !opts.SkipPruning {
		if err := s.prune(ctx, uow, repositoryId, workPlan, sink); err != nil {
			// Pruning is best-effort; a failure never blocks generation.
			sink.Error("pruning failed: %v", err)
			s.logger.Warn("GENERATION", "pruning failed", map[string]interface{}{
				"repository_id": repositoryId,
				"error":         err.Error(),
			})
		}
	}

	for i := range workPlan.Items {
		item := &workPlan.Items[i]
		session.CurrentItem = item.DocPath
		itemResult := s.generateItem(ctx, uow, repo, session, workPlan, item, sink)

		if itemResult.Success {
			result.DocumentsGenerated++
			result.LinksCreated += itemResult.LinksSaved
			result.EstimatedCost += itemResult.Cost
		}
		result.Items = append(result.Items, itemResult)

		session.Completed++
		if err := uow.GenerationSessionRepository().Update(ctx, session); err != nil {
			s.logger.Warn("GENERATION", "failed to update session progress", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	result.Metrics.GenerationDuration = time.Since(generationStart)

	now := time.Now()
	session.Status = entity.SessionStatusCompleted
	session.CurrentItem = ""
	session.CompletedAt = &now
	if err := uow.GenerationSessionRepository().Update(ctx, session); err != nil {
		s.logger.Error("GENERATION", "failed to complete session", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}

	repo.Status = entity.RepositoryStatusCompleted
	repo.LastSessionId = &session.Id
	if err := uow.RepositoryRepository().Update(ctx, repo); err != nil {
		s.logger.Error("GENERATION", "failed to update repository status", map[string]interface{}{
			"repository_id": repositoryId,
			"error":         err.Error(),
		})
	}

	result.Success = true
	sink.Info("run finished: %d/%d documents generated", result.DocumentsGenerated, result.DocumentsPlanned)
	result.Progress = sink.Entries()
	return result
}

// generateItem produces one document. Every failure is folded into the
// returned result; nothing here aborts the run.
func (s *generationService) generateItem(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	repo *entity.Repository,
	session *entity.GenerationSession,
	workPlan *store.WorkPlan,
	item *store.WorkPlanItem,
	sink *progress.Sink,
) store.GenerationResult {
	start := time.Now()
	itemResult := store.GenerationResult{DocPath: item.DocPath}
	fail := func(err error) store.GenerationResult {
		itemResult.Error = err.Error()
		itemResult.Duration = time.Since(start)
		sink.Error("item %s failed: %v", item.DocPath, err)
		return itemResult
	}

	sink.Info("generating %s", item.DocPath)

	components, err := uow.ComponentRepository().FindByIds(ctx, repo.Id, item.ComponentIDs)
	if err != nil {
		return fail(fmt.Errorf("load components: %w", err))
	}

	// Context loading is best-effort: an empty window degrades quality,
	// not correctness.
	window, err := s.contextLoader.LoadContextWindow(ctx, repo.Id, item.DocPath, nil)
	if err != nil {
		sink.Error("context load failed for %s: %v", item.DocPath, err)
		window = &store.ContextWindow{}
	}

	var prompt string
	if item.DocumentType == store.DocumentTypeOverview {
		prompt = s.buildOverviewPrompt(repo, workPlan)
	} else {
		prompt = buildDocumentPrompt(item, components, window)
	}

	completion, err := s.llmProvider.Complete(ctx, prompt,
		llm.WithSystem(constant.GenerationSystemPrompt),
		llm.WithModel(s.modelName),
	)
	if err != nil {
		return fail(fmt.Errorf("completion: %w", err))
	}
	if strings.TrimSpace(completion.Text) == "" {
		return fail(fmt.Errorf("completion returned empty content"))
	}

	doc := &entity.Document{
		RepositoryId: repo.Id,
		DocumentPath: item.DocPath,
		Title:        item.Title,
		Content:      completion.Text,
		Summary:      summarize(completion.Text),
		DocumentType: item.DocumentType,
		ComponentIds: item.ComponentIDs,
		Metadata: map[string]interface{}{
			"generated_at": time.Now().Format(time.RFC3339),
			"model":        s.modelName,
			"session_id":   session.Id.String(),
		},
		CreatedAt: time.Now(),
	}
	if err := uow.DocumentRepository().Upsert(ctx, doc); err != nil {
		return fail(fmt.Errorf("save document: %w", err))
	}

	itemResult.Success = true
	itemResult.TokensIn = completion.TokensIn
	itemResult.TokensOut = completion.TokensOut
	itemResult.Cost = completion.CostEstimate

	// Metrics and links are persistence side-channels: their failure is
	// logged but never reclassifies the item.
	metric := &entity.GenerationMetric{
		RepositoryId: repo.Id,
		DocumentId:   doc.Id,
		SessionId:    session.Id,
		Model:        s.modelName,
		TokensIn:     completion.TokensIn,
		TokensOut:    completion.TokensOut,
		CostEstimate: completion.CostEstimate,
		DurationMs:   time.Since(start).Milliseconds(),
		CreatedAt:    time.Now(),
	}
	if err := uow.GenerationMetricRepository().Create(ctx, metric); err != nil {
		s.logger.Warn("GENERATION", "failed to save metrics", map[string]interface{}{
			"doc_path": item.DocPath,
			"error":    err.Error(),
		})
	}

	itemResult.LinksSaved = s.saveLinks(ctx, uow, repo.Id, doc, window)

	// New content must be visible to later items in this run.
	s.contextLoader.Invalidate(repo.Id)

	itemResult.Duration = time.Since(start)
	return itemResult
}

// saveLinks replaces the document's outgoing links with references to the
// context documents that guided its generation. Targets that no longer
// exist are skipped silently.
func (s *generationService) saveLinks(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	repositoryId uuid.UUID,
	doc *entity.Document,
	window *store.ContextWindow,
) int {
	if err := uow.DocumentLinkRepository().DeleteBySourceDocumentId(ctx, doc.Id); err != nil {
		s.logger.Warn("GENERATION", "failed to clear links", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		return 0
	}

	var links []*entity.DocumentLink
	for _, ctxDoc := range window.Documents {
		if ctxDoc.ID == doc.Id {
			continue
		}
		target, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: ctxDoc.ID})
		if err != nil || target == nil {
			continue
		}
		linkType := constant.LinkTypeReferences
		if ctxDoc.DocumentType == store.DocumentTypeOverview {
			linkType = constant.LinkTypeOverview
		}
		links = append(links, &entity.DocumentLink{
			RepositoryId:     repositoryId,
			SourceDocumentId: doc.Id,
			TargetDocumentId: ctxDoc.ID,
			LinkType:         linkType,
			CreatedAt:        time.Now(),
		})
	}

	if err := uow.DocumentLinkRepository().CreateAll(ctx, links); err != nil {
		s.logger.Warn("GENERATION", "failed to save links", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		return 0
	}
	return len(links)
}

// prune deletes documents whose paths fell out of the plan, links and
// metrics first to respect referential ordering.
func (s *generationService) prune(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	repositoryId uuid.UUID,
	workPlan *store.WorkPlan,
	sink *progress.Sink,
) error {
	existing, err := uow.DocumentRepository().FindAll(ctx, specification.ByRepositoryID{RepositoryID: repositoryId})
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	planned := workPlan.DocPaths()
	var stale []uuid.UUID
	var stalePaths []string
	for _, doc := range existing {
		if !planned[doc.DocumentPath] {
			stale = append(stale, doc.Id)
			stalePaths = append(stalePaths, doc.DocumentPath)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	sort.Strings(stalePaths)
	sink.Info("pruning %d stale documents: %s", len(stale), strings.Join(stalePaths, ", "))

	if err := uow.DocumentLinkRepository().DeleteByDocumentIds(ctx, stale); err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	if err := uow.GenerationMetricRepository().DeleteByDocumentIds(ctx, stale); err != nil {
		return fmt.Errorf("delete metrics: %w", err)
	}
	if err := uow.DocumentRepository().DeleteByIds(ctx, stale); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}

	s.contextLoader.Invalidate(repositoryId)
	return nil
}

// fail marks the run failed at a phase boundary and returns the partial
// result. The session may not exist yet when an early phase fails.
func (s *generationService) fail(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.GenerationSession,
	repo *entity.Repository,
	result *store.RunResult,
	sink *progress.Sink,
	cause error,
) *store.RunResult {
	sink.Error("run failed: %v", cause)
	s.logger.Error("GENERATION", "pipeline run failed", map[string]interface{}{
		"session_id": result.SessionID,
		"error":      cause.Error(),
	})

	if session == nil {
		found, err := uow.GenerationSessionRepository().FindOne(ctx, specification.ByID{ID: result.SessionID})
		if err == nil {
			session = found
		}
	}
	if session != nil {
		now := time.Now()
		session.Status = entity.SessionStatusFailed
		session.Error = cause.Error()
		session.CompletedAt = &now
		if err := uow.GenerationSessionRepository().Update(ctx, session); err != nil {
			s.logger.Error("GENERATION", "failed to mark session failed", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
		}
	}

	if repo != nil {
		repo.Status = entity.RepositoryStatusFailed
		if err := uow.RepositoryRepository().Update(ctx, repo); err != nil {
			s.logger.Error("GENERATION", "failed to update repository status", map[string]interface{}{
				"repository_id": repo.Id,
				"error":         err.Error(),
			})
		}
	}

	result.Success = false
	result.Error = cause.Error()
	result.Progress = sink.Entries()
	return result
}

func (s *generationService) buildOverviewPrompt(repo *entity.Repository, workPlan *store.WorkPlan) string {
	var languages string
	if langs, ok := workPlan.Metadata["languages"].([]string); ok {
		languages = strings.Join(langs, ", ")
	}
	componentCount := 0
	if n, ok := workPlan.Metadata["component_count"].(int); ok {
		componentCount = n
	}

	var docList strings.Builder
	for _, item := range workPlan.Items {
		if item.DocumentType == store.DocumentTypeOverview {
			continue
		}
		fmt.Fprintf(&docList, "- %s (%s): %s\n", item.DocPath, item.DocumentType, item.Title)
	}

	return fmt.Sprintf(constant.OverviewPromptTemplate, repo.Name, languages, componentCount, docList.String())
}

func buildDocumentPrompt(item *store.WorkPlanItem, components []*entity.Component, window *store.ContextWindow) string {
	var compList strings.Builder
	for _, c := range components {
		fmt.Fprintf(&compList, "- %s (%s) in %s, lines %d-%d\n", c.Name, c.ComponentType, c.ParentPath, c.StartLine, c.EndLine)
		for _, rel := range c.Relations {
			fmt.Fprintf(&compList, "  - %s %s\n", rel.Type, rel.Target)
		}
	}
	if compList.Len() == 0 {
		compList.WriteString("(none recorded)\n")
	}

	var contextBlock strings.Builder
	for _, doc := range window.Documents {
		fmt.Fprintf(&contextBlock, "- %s: %s\n", doc.DocumentPath, doc.Summary)
	}
	if contextBlock.Len() == 0 {
		contextBlock.WriteString("(no prior documentation)\n")
	}

	return fmt.Sprintf(constant.DocumentPromptTemplate, item.Title, item.DocumentType, compList.String(), contextBlock.String())
}

// summarize takes the first paragraph of the generated markdown, capped
// at 500 characters. The system prompt asks the model to lead with a
// one-sentence summary, so this usually captures it.
func summarize(content string) string {
	trimmed := strings.TrimSpace(content)
	if idx := strings.Index(trimmed, "\n\n"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimLeft(trimmed, "# ")
	if len(trimmed) > 500 {
		trimmed = trimmed[:500]
	}
	return strings.TrimSpace(trimmed)
}
