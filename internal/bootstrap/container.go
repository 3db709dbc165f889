package bootstrap

import (
	"context"
	"log"
	"time"

	"mindly-be/internal/config"
	"mindly-be/internal/controller"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/pkg/mailer"
	"mindly-be/internal/repository/contract"
	"mindly-be/internal/repository/implementation"
	"mindly-be/internal/repository/memory"
	"mindly-be/internal/repository/redisstore"
	"mindly-be/internal/service"
	"mindly-be/internal/websocket"
	"mindly-be/pkg/assistant"
	"mindly-be/pkg/embedding"
	"mindly-be/pkg/events"
	"mindly-be/pkg/llm/factory"

	pktNats "mindly-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger *logger.ZapLogger

	// Controllers
	HealthController        controller.IHealthController
	ChatController          controller.IChatController
	QuestionnaireController controller.IQuestionnaireController
	KnowledgeController     controller.IKnowledgeController
	ContactController       controller.IContactController

	// WebSocket chat
	ChatSocket   *websocket.ChatHandler
	WebSocketHub *websocket.Hub

	// Background services, started by main
	ConsumerService service.IConsumerService
	AlertService    service.IAlertService

	KnowledgeService service.IKnowledgeService

	closers []func()
}

// NewContainer wires every component. db may be nil, in which case the
// knowledge base is disabled and questionnaires stay in memory.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.SupportInbox,
	)

	// 2. Event buses
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var eventPublisher events.Publisher = events.NopPublisher{}
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher, events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	rdb := connectRedis(ctx, cfg, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// 3. AI providers
	llmProvider, err := factory.NewLLMProvider(ctx, cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Keys.GoogleGemini)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": cfg.Ai.LLMModel})
	companion := assistant.NewCompanion(llmProvider)

	// 4. Repositories
	var sessionRepo contract.SessionRepository
	switch cfg.Chat.SessionStore {
	case "redis":
		if rdb == nil {
			log.Fatalf("[FATAL] SESSION_STORE=redis but Redis is unreachable at %s", cfg.App.RedisURL)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb, cfg.Chat.SessionTTL, cfg.Chat.MaxTurns)
	default:
		sessionRepo = memory.NewSessionRepository(cfg.Chat.SessionTTL, cfg.Chat.MaxTurns)
	}

	var questionnaireRepo contract.QuestionnaireRepository
	switch cfg.Chat.QuestionnaireStore {
	case "postgres":
		if db == nil {
			log.Fatalf("[FATAL] QUESTIONNAIRE_STORE=postgres requires DB_CONNECTION_STRING")
		}
		questionnaireRepo = implementation.NewQuestionnaireRepository(db)
	default:
		questionnaireRepo = memory.NewQuestionnaireRepository()
	}

	var knowledgeRepo contract.KnowledgeRepository
	var embeddingProvider embedding.EmbeddingProvider
	if db != nil {
		knowledgeRepo = implementation.NewKnowledgeRepository(db)
		embeddingProvider, err = embedding.NewEmbeddingProvider(ctx, cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel, cfg.Ai.OllamaBaseURL, cfg.Keys.GoogleGemini)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Embedding provider unavailable, knowledge base disabled", map[string]interface{}{"error": err.Error()})
			knowledgeRepo = nil
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Knowledge.IngestTopic, pubSub)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, embeddingProvider, publisherService, sysLogger, cfg.Knowledge.DefaultTopK)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, eventPublisher, sysLogger)
	chatService := service.NewChatService(
		sessionRepo,
		questionnaireService,
		companion,
		companion,
		eventPublisher,
		sysLogger,
		service.ChatOptions{
			HistoryWindow:  cfg.Chat.HistoryWindow,
			Timeout:        cfg.Ai.Timeout,
			AlertThreshold: cfg.Chat.AlertThreshold,
		},
	)
	contactService := service.NewContactService(emailService, sysLogger)

	c.KnowledgeService = knowledgeService
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Knowledge.IngestTopic, knowledgeService, sysLogger)
	if natsSub != nil && cfg.SMTP.SupportInbox != "" {
		c.AlertService = service.NewAlertService(natsSub, emailService, sysLogger)
	}

	// 6. WebSocket hub
	c.WebSocketHub = websocket.NewHub(rdb, sysLogger)
	c.ChatSocket = websocket.NewChatHandler(c.WebSocketHub, chatService)

	// 7. Controllers
	c.HealthController = controller.NewHealthController()
	c.ChatController = controller.NewChatController(chatService)
	c.QuestionnaireController = controller.NewQuestionnaireController(questionnaireService)
	c.KnowledgeController = controller.NewKnowledgeController(knowledgeService)
	c.ContactController = controller.NewContactController(contactService)

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		sysLogger.Warn("Bootstrap", "Redis unreachable, running single-instance", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
