package bootstrap

import (
	"context"
	"log"

	"ai-mathteach-be/internal/config"
	"ai-mathteach-be/internal/controller"
	"ai-mathteach-be/internal/handler"
	"ai-mathteach-be/internal/pkg/logger"
	"ai-mathteach-be/internal/repository/memory"
	"ai-mathteach-be/internal/repository/unitofwork"
	"ai-mathteach-be/internal/service"
	"ai-mathteach-be/internal/websocket"
	"ai-mathteach-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AiController         controller.IAiController
	LessonPlanController controller.ILessonPlanController
	QuestionController   controller.IQuestionController
	QuizController       controller.IQuizController
	AnalyticsController  controller.IAnalyticsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

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

	// 3. Model Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Ai.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// In-memory conversation storage for tutor chat sessions.
	conversationRepo := memory.NewConversationRepository()

	// 3.5 Infrastructure
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.EventsTopic, pubSub)
	usageService := service.NewUsageService(rdb, cfg.Usage.DailyGenerationLimit, sysLogger)

	generationService := service.NewAiGenerationService(
		uowFactory,
		llmProvider,
		usageService,
		publisherService,
		conversationRepo,
		sysLogger,
	)
	historyService := service.NewAiHistoryService(uowFactory)
	lessonPlanService := service.NewLessonPlanService(uowFactory)
	questionService := service.NewQuestionService(uowFactory)
	quizService := service.NewQuizService(uowFactory, publisherService)
	analyticsService := service.NewAnalyticsService(uowFactory)

	notifService := service.NewNotificationService(uowFactory, wsHub, wsLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EventsTopic,
		notifService,
		sysLogger,
	)

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		AiController:         controller.NewAiController(generationService, historyService, usageService, llmProvider),
		LessonPlanController: controller.NewLessonPlanController(lessonPlanService),
		QuestionController:   controller.NewQuestionController(questionService),
		QuizController:       controller.NewQuizController(quizService),
		AnalyticsController:  controller.NewAnalyticsController(analyticsService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}
