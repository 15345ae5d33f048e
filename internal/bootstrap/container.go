package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-docgen-be/internal/config"
	"ai-docgen-be/internal/controller"
	"ai-docgen-be/internal/entity"
	"ai-docgen-be/internal/handler"
	"ai-docgen-be/internal/pkg/logger"
	"ai-docgen-be/internal/pkg/mailer"
	"ai-docgen-be/internal/repository/unitofwork"
	"ai-docgen-be/internal/service"
	"ai-docgen-be/internal/websocket"
	docContext "ai-docgen-be/pkg/docgen/context"
	"ai-docgen-be/pkg/docgen/extract"
	"ai-docgen-be/pkg/docgen/plan"
	"ai-docgen-be/pkg/llm/factory"
	"ai-docgen-be/pkg/vcs"
	"ai-docgen-be/pkg/vcs/github"
	"ai-docgen-be/pkg/vcs/local"

	pktNats "ai-docgen-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RepositoryController controller.IRepositoryController
	GenerationController controller.IGenerationController
	DocumentController   controller.IDocumentController
	AdminController      controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Progress
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Pipeline Components
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:           cfg.Ai.Provider,
		Model:              cfg.Ai.Model,
		BaseURL:            cfg.Ai.BaseURL,
		APIKey:             cfg.Ai.APIKey,
		CostPerMilleTokens: cfg.Ai.CostPerMilleTokens,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	vcsAdapters := map[entity.RepositoryProvider]vcs.Adapter{
		entity.RepositoryProviderLocal:  local.NewAdapter(),
		entity.RepositoryProviderGithub: github.NewAdapter(context.Background(), cfg.Vcs.GithubToken),
	}

	registry := extract.NewDefaultRegistry()
	planner := plan.NewPlanner()
	contextLoader := docContext.NewLoader(
		service.NewDocumentSource(uowFactory),
		log.New(os.Stdout, "", log.LstdFlags),
	)

	// 4. Services
	generationService := service.NewGenerationService(
		uowFactory,
		vcsAdapters,
		registry,
		planner,
		contextLoader,
		llmProvider,
		cfg.Ai.Model,
		sysLogger,
		wsHub, // Hub implements progress.Publisher
	)

	publisherService := service.NewPublisherService(pubSub, cfg.Pipeline.JobTopicName)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Pipeline.JobTopicName,
		uowFactory,
		generationService,
		natsPub,
		emailService,
		cfg.Pipeline.NotifyEmail,
	)

	repositoryService := service.NewRepositoryService(uowFactory)
	documentService := service.NewDocumentService(uowFactory)
	queueService := service.NewGenerationQueueService(uowFactory, publisherService)

	// 5. Handlers & Controllers
	progressHandler := handler.NewProgressHandler(wsHub, wsLogger)

	return &Container{
		ProgressHandler:      progressHandler,
		WebSocketHub:         wsHub,
		RepositoryController: controller.NewRepositoryController(repositoryService),
		GenerationController: controller.NewGenerationController(queueService),
		DocumentController:   controller.NewDocumentController(documentService),
		AdminController:      controller.NewAdminController(sysLogger),

		ConsumerService: consumerService,
	}
}
