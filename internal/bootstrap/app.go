package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"syncpad/internal/ai"
	"syncpad/internal/app"
	"syncpad/internal/cache"
	"syncpad/internal/config"
	"syncpad/internal/cron"
	"syncpad/internal/model"
	"syncpad/internal/platform/mysql"
	"syncpad/internal/platform/rabbitmq"
	"syncpad/internal/platform/redis"
	"syncpad/internal/repository"
	"syncpad/internal/worker"
)

// App wires every subsystem together and owns the shared resources.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	StartedAt time.Time

	DB        *gorm.DB
	RedisCli  *redisv9.Client
	AMQPConn  *amqp.Connection
	Scheduler *cron.Scheduler

	AuthService    *app.AuthService
	PageService    *app.PageService
	ChatService    *app.ChatService
	SearchService  *app.SearchService
	TodoService    *app.TodoService
	NoteService    *app.NoteService
	DocService     *app.DocService
	CleanupService *app.CleanupService

	askWorker *worker.AskWorker
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger failed: %w", err)
	}

	db, err := mysql.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql failed: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Page{},
		&model.Message{},
		&model.Todo{},
		&model.Note{},
		&model.Doc{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}

	redisCli, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("connect redis failed: %w", err)
	}

	amqpConn, err := rabbitmq.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq failed: %w", err)
	}

	pageRepo := repository.NewPageRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	docRepo := repository.NewDocRepository(db)

	messageCache := cache.NewPageMessageCache(
		redisCli,
		time.Duration(cfg.Redis.MessagesTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.MessagesDirtyTTLSeconds)*time.Second,
	)

	askPublisher := rabbitmq.NewAskPublisher(amqpConn, cfg.RabbitMQ.AskQueue)

	llmCfg := ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}
	llmClient := ai.NewOpenAICompatibleClient(logger)

	a := &App{
		Config:    cfg,
		Logger:    logger,
		StartedAt: time.Now(),
		DB:        db,
		RedisCli:  redisCli,
		AMQPConn:  amqpConn,
	}

	a.AuthService = app.NewAuthService(
		cfg.Auth.ModPasswordHash,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute,
	)
	a.PageService = app.NewPageService(pageRepo, messageRepo, todoRepo, noteRepo, docRepo, messageCache)
	a.ChatService = app.NewChatService(pageRepo, messageRepo, askPublisher, messageCache, logger)
	a.SearchService = app.NewSearchService(messageRepo, logger)
	a.TodoService = app.NewTodoService(pageRepo, todoRepo)
	a.NoteService = app.NewNoteService(noteRepo)
	a.DocService = app.NewDocService(docRepo)
	a.CleanupService = app.NewCleanupService(
		messageRepo,
		todoRepo,
		noteRepo,
		docRepo,
		pageRepo,
		messageRepo,
		cfg.Cleanup.WelcomeSender,
		cfg.Cleanup.WelcomeMessage,
		logger,
	)

	responder := app.NewResponder(
		messageRepo,
		messageCache,
		llmClient,
		llmCfg,
		cfg.LLM.MaxContextMessage,
		time.Duration(cfg.LLM.StreamTimeoutSec)*time.Second,
		logger,
	)
	a.askWorker = worker.NewAskWorker(amqpConn, responder, cfg.RabbitMQ.AskQueue, logger)
	if err := a.askWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start ask worker failed: %w", err)
	}

	a.Scheduler = cron.New()
	a.Scheduler.Register(cron.Job{
		Name:        "cleanup",
		Description: "wipe messages, todos, notes and docs, then reseed welcome messages",
		Interval:    time.Duration(cfg.Cleanup.IntervalHours) * time.Hour,
		Fn: func(ctx context.Context) error {
			report := a.CleanupService.Run(ctx)
			if report.Failed() {
				return fmt.Errorf("cleanup finished with %d collection errors", len(report.Errors))
			}
			return nil
		},
	})
	a.Scheduler.Start(ctx)

	return a, nil
}

func (a *App) Close() {
	if a.askWorker != nil {
		a.askWorker.Close()
	}
	if a.AMQPConn != nil {
		_ = a.AMQPConn.Close()
	}
	if a.RedisCli != nil {
		_ = a.RedisCli.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
