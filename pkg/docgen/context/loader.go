package context

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"sort"
	"time"

	"ai-docgen-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Strategies for selecting prior documents.
const (
	StrategyRecent   = "recent"
	StrategyRelevant = "relevant"
	StrategyMixed    = "mixed"
)

// Config controls one context-window load. A nil config means all
// defaults; zero numeric fields on a non-nil config fall back
// individually. MaxTokens is advisory: the loader reports the estimate
// but never truncates to fit it.
type Config struct {
	MaxTokens        int
	MaxDocuments     int
	Strategy         string
	IncludeOverview  bool
	CacheExpiryHours int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:        8000,
		MaxDocuments:     50,
		Strategy:         StrategyMixed,
		IncludeOverview:  true,
		CacheExpiryHours: 24,
	}
}

// SourceDocument is the slice of a persisted document the loader needs.
type SourceDocument struct {
	ID           uuid.UUID
	Title        string
	DocumentPath string
	Summary      string
	DocumentType string
	UpdatedAt    time.Time
}

// DocumentSource yields previously generated documents, most recently
// updated first.
type DocumentSource interface {
	RecentDocuments(ctx context.Context, repositoryID uuid.UUID, limit int) ([]*SourceDocument, error)
}

// Loader assembles a bounded window of prior document summaries to guide
// generation, with a TTL cache in front of the store.
type Loader struct {
	source DocumentSource
	cache  *cache.Cache
	logger *log.Logger
}

func NewLoader(source DocumentSource, logger *log.Logger) *Loader {
	// Default expiration is per-entry; the sweep interval handles purging.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &Loader{
		source: source,
		cache:  c,
		logger: logger,
	}
}

// LoadContextWindow builds (or returns a cached) context window for a
// repository, optionally biased toward a target document path.
func (l *Loader) LoadContextWindow(ctx context.Context, repositoryID uuid.UUID, targetDocPath string, cfg *Config) (*store.ContextWindow, error) {
	config := normalizeConfig(cfg)
	start := time.Now()

	key := cacheKey(repositoryID, targetDocPath, config)
	if cached, found := l.cache.Get(key); found {
		if window, ok := cached.(*store.ContextWindow); ok {
			return window, nil
		}
	}

	pool, err := l.source.RecentDocuments(ctx, repositoryID, 2*config.MaxDocuments)
	if err != nil {
		return nil, fmt.Errorf("load recent documents: %w", err)
	}
	if l.logger != nil {
		l.logger.Printf("[CONTEXT] cache miss repo=%s target=%q strategy=%s pool=%d", repositoryID, targetDocPath, config.Strategy, len(pool))
	}

	window := &store.ContextWindow{
		Metadata: map[string]interface{}{
			"repository_id": repositoryID.String(),
			"cache_key":     key,
			"strategy":      config.Strategy,
		},
	}
	if len(pool) == 0 {
		window.Metadata["load_time_ms"] = time.Since(start).Milliseconds()
		return window, nil
	}

	// The overview document is pinned outside the strategy budget.
	var overview *SourceDocument
	remaining := make([]*SourceDocument, 0, len(pool))
	for _, doc := range pool {
		if doc.DocumentType == store.DocumentTypeOverview && overview == nil {
			overview = doc
			continue
		}
		remaining = append(remaining, doc)
	}
	if config.IncludeOverview && overview != nil {
		window.Documents = append(window.Documents, toContextDocument(overview, 1.0))
	}

	var selected []store.ContextDocument
	switch config.Strategy {
	case StrategyRecent:
		selected = selectRecent(remaining, config.MaxDocuments)
	case StrategyRelevant:
		selected = selectRelevant(remaining, targetDocPath, config.MaxDocuments)
	default:
		selected = selectMixed(remaining, targetDocPath, config.MaxDocuments)
	}
	window.Documents = append(window.Documents, selected...)

	for _, doc := range window.Documents {
		window.TotalTokens += store.EstimateTokens(doc.Title, doc.Summary)
	}
	window.Metadata["load_time_ms"] = time.Since(start).Milliseconds()

	// Cache writes are best-effort; a failed write only costs a recompute.
	l.cache.Set(key, window, time.Duration(config.CacheExpiryHours)*time.Hour)

	return window, nil
}

// Invalidate drops every cached window for a repository. Called after a
// generation run changes the document set.
func (l *Loader) Invalidate(repositoryID uuid.UUID) {
	prefix := repositoryID.String()
	for key := range l.cache.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			l.cache.Delete(key)
		}
	}
}

func selectRecent(pool []*SourceDocument, limit int) []store.ContextDocument {
	var out []store.ContextDocument
	for _, doc := range pool {
		if len(out) >= limit {
			break
		}
		out = append(out, toContextDocument(doc, 0.8))
	}
	return out
}

func selectRelevant(pool []*SourceDocument, targetDocPath string, limit int) []store.ContextDocument {
	if targetDocPath == "" {
		return selectRecent(pool, limit)
	}

	scored := make([]store.ContextDocument, 0, len(pool))
	for _, doc := range pool {
		scored = append(scored, toContextDocument(doc, RelevanceScore(doc.DocumentPath, targetDocPath)))
	}
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].RelevanceScore > scored[b].RelevanceScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// selectMixed fills 60% of the budget with recent documents and 40% with
// relevant ones, deduplicated by id with the last (relevant) occurrence
// winning.
func selectMixed(pool []*SourceDocument, targetDocPath string, limit int) []store.ContextDocument {
	recentBudget := limit * 6 / 10
	relevantBudget := limit - recentBudget

	merged := append(
		selectRecent(pool, recentBudget),
		selectRelevant(pool, targetDocPath, relevantBudget)...,
	)

	lastIndex := map[uuid.UUID]int{}
	for i, doc := range merged {
		lastIndex[doc.ID] = i
	}
	var out []store.ContextDocument
	for i, doc := range merged {
		if lastIndex[doc.ID] == i {
			out = append(out, doc)
		}
	}
	return out
}

// RelevanceScore compares two document paths by shared segment prefix,
// normalized by the longer path's segment count, with a 0.1 penalty per
// segment-count mismatch. The result is clamped into [0,1].
func RelevanceScore(docPath, targetDocPath string) float64 {
	a := splitSegments(docPath)
	b := splitSegments(targetDocPath)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	common := 0
	for common < len(a) && common < len(b) && a[common] == b[common] {
		common++
	}

	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	mismatch := len(a) - len(b)
	if mismatch < 0 {
		mismatch = -mismatch
	}

	score := float64(common)/float64(longer) - 0.1*float64(mismatch)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func splitSegments(path string) []string {
	var segments []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}

func toContextDocument(doc *SourceDocument, score float64) store.ContextDocument {
	return store.ContextDocument{
		ID:             doc.ID,
		Title:          doc.Title,
		DocumentPath:   doc.DocumentPath,
		Summary:        doc.Summary,
		DocumentType:   doc.DocumentType,
		RelevanceScore: score,
	}
}

func normalizeConfig(cfg *Config) Config {
	defaults := DefaultConfig()
	if cfg == nil {
		return defaults
	}
	out := *cfg
	if out.MaxTokens <= 0 {
		out.MaxTokens = defaults.MaxTokens
	}
	if out.MaxDocuments <= 0 {
		out.MaxDocuments = defaults.MaxDocuments
	}
	if out.Strategy == "" {
		out.Strategy = defaults.Strategy
	}
	if out.CacheExpiryHours <= 0 {
		out.CacheExpiryHours = defaults.CacheExpiryHours
	}
	return out
}

func cacheKey(repositoryID uuid.UUID, targetDocPath string, cfg Config) string {
	target := targetDocPath
	if target == "" {
		target = "none"
	}
	raw := fmt.Sprintf("%s|%s|%s|%d|%d", repositoryID, target, cfg.Strategy, cfg.MaxTokens, cfg.MaxDocuments)
	return fmt.Sprintf("%s:%x", repositoryID, md5.Sum([]byte(raw)))
}
