package bootstrap

import (
	"log"

	"dec-assist-be/internal/config"
	"dec-assist-be/internal/controller"
	"dec-assist-be/internal/pkg/logger"
	"dec-assist-be/internal/repository/unitofwork"
	"dec-assist-be/internal/service"
	"dec-assist-be/pkg/embedding"
	"dec-assist-be/pkg/llm/factory"
	"dec-assist-be/pkg/loader"
	"dec-assist-be/pkg/memory"

	pkgNats "dec-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	SessionController controller.ISessionController
	UploadController  controller.IUploadController

	// Background Services (Exposed for main.go to run)
	CorpusService service.ICorpusService

	// Logger (Exposed for Sync on shutdown)
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	apiKey := cfg.Keys.Groq
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. In-Memory Session State
	conversations := memory.NewConversationMemory()
	sessionIdx := memory.NewSessionIndexStore()
	sessionLock := memory.NewKeyedLock()

	// 5. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	loaders := loader.NewRegistry(cfg.Corpus.ExtractorBaseURL)

	// 6. Services
	corpusService := service.NewCorpusService(
		pubSub,
		cfg.Corpus.IngestTopic,
		uowFactory,
		embeddingProvider,
		loaders,
	)

	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		conversations,
		sessionIdx,
		sessionLock,
		natsPub,
	)

	sessionService := service.NewSessionService(uowFactory, conversations, sessionIdx, natsPub)

	uploadService := service.NewUploadService(
		uowFactory,
		embeddingProvider,
		loaders,
		sessionIdx,
		sessionLock,
	)

	// 7. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		SessionController: controller.NewSessionController(sessionService),
		UploadController:  controller.NewUploadController(uploadService),
		CorpusService:     corpusService,
		Logger:            sysLogger,
	}
}
