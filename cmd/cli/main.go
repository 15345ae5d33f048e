package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ai-docgen-be/internal/config"
	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/repository/unitofwork"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/pkg/database"
	docContext "ai-docgen-be/pkg/docgen/context"
	"ai-docgen-be/pkg/docgen/extract"
	"ai-docgen-be/pkg/docgen/plan"
	"ai-docgen-be/pkg/docgen/progress"
	"ai-docgen-be/pkg/llm/factory"
	"ai-docgen-be/pkg/vcs"
	"ai-docgen-be/pkg/vcs/local"
)

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Repository documentation generator",
	Long:  "Runs the documentation pipeline against a local repository without going through the HTTP API.",
}

var (
	runPath        string
	runName        string
	runSessionType string
	runSkipPruning bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate documentation for a local repository",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runPath, "path", "", "Path to the repository root (required)")
	runCmd.Flags().StringVar(&runName, "name", "", "Repository display name (defaults to the directory name)")
	runCmd.Flags().StringVar(&runSessionType, "session-type", "full", "Session type: full or incremental")
	runCmd.Flags().BoolVar(&runSkipPruning, "skip-pruning", false, "Keep documents that fell out of the plan")
	runCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(runCmd)
}

// terminalPublisher streams pipeline progress to the terminal.
type terminalPublisher struct{}

func (terminalPublisher) PublishProgress(_ string, entry progress.Entry) {
	if entry.Level == progress.LevelError {
		color.Red("  %s", entry.Message)
		return
	}
	color.Cyan("  %s", entry.Message)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	absPath, err := filepath.Abs(runPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("repository path: %w", err)
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:           cfg.Ai.Provider,
		Model:              cfg.Ai.Model,
		BaseURL:            cfg.Ai.BaseURL,
		APIKey:             cfg.Ai.APIKey,
		CostPerMilleTokens: cfg.Ai.CostPerMilleTokens,
	})
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	repoId, err := findOrRegisterRepository(ctx, uowFactory, absPath)
	if err != nil {
		return err
	}

	generationService := service.NewGenerationService(
		uowFactory,
		map[entity.RepositoryProvider]vcs.Adapter{
			entity.RepositoryProviderLocal: local.NewAdapter(),
		},
		extract.NewDefaultRegistry(),
		plan.NewPlanner(),
		docContext.NewLoader(service.NewDocumentSource(uowFactory), log.New(os.Stderr, "", log.LstdFlags)),
		llmProvider,
		cfg.Ai.Model,
		logger.NewZapLogger(cfg.App.LogFilePath, false),
		terminalPublisher{},
	)

	color.Yellow("Generating documentation for %s", absPath)
	start := time.Now()

	result := generationService.Run(ctx, repoId, service.RunOptions{
		SessionType: runSessionType,
		SkipPruning: runSkipPruning,
	})

	if !result.Success {
		color.Red("Run failed: %s", result.Error)
		return fmt.Errorf("generation failed")
	}

	color.Green("Done in %s: %d/%d documents, %d links, estimated cost $%.4f",
		time.Since(start).Round(time.Millisecond),
		result.DocumentsGenerated,
		result.DocumentsPlanned,
		result.LinksCreated,
		result.EstimatedCost,
	)
	return nil
}

// findOrRegisterRepository reuses the stored repository for the path or
// registers a new one.
func findOrRegisterRepository(ctx context.Context, uowFactory unitofwork.RepositoryFactory, absPath string) (uuid.UUID, error) {
	uow := uowFactory.NewUnitOfWork(ctx)

	repos, err := uow.RepositoryRepository().FindAll(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("list repositories: %w", err)
	}
	for _, repo := range repos {
		if repo.Provider == entity.RepositoryProviderLocal && repo.Ref == absPath {
			return repo.Id, nil
		}
	}

	name := runName
	if name == "" {
		name = filepath.Base(absPath)
	}
	repo := &entity.Repository{
		Id:        uuid.New(),
		Name:      name,
		Provider:  entity.RepositoryProviderLocal,
		Ref:       absPath,
		Status:    entity.RepositoryStatusIdle,
		CreatedAt: time.Now(),
	}
	if err := uow.RepositoryRepository().Create(ctx, repo); err != nil {
		return uuid.Nil, fmt.Errorf("register repository: %w", err)
	}
	color.Yellow("Registered repository %s (%s)", name, repo.Id)
	return repo.Id, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
