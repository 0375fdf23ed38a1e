package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dsb-backend-go/internal/api"
	"dsb-backend-go/internal/config"
	"dsb-backend-go/internal/core"
	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/llm"
	"dsb-backend-go/internal/middleware"
	"dsb-backend-go/pkg/cache"
	"dsb-backend-go/pkg/mailer"
	"dsb-backend-go/pkg/messagequeue"
)

func main() {
	// .env is a development convenience; release deployments set the environment directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: error loading .env file: %v", err)
		}
	}

	// --- 1. Logger ---
	logger, err := newLogger(os.Getenv("GIN_MODE") == "release")
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: failed to initialize zap logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// --- 2. Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load application configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("llmProvider", appConfig.LLMProvider),
		zap.String("storeBackend", appConfig.StoreBackend),
		zap.Duration("llmTimeout", appConfig.LLMTimeout),
		zap.Bool("requireAuth", appConfig.RequireAuth),
	)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()

	// Everything opened below is closed in reverse order on shutdown.
	var closers []namedCloser

	// --- 3. Firebase (store backend and/or ID-token auth) ---
	var fbApp *firebase.App
	if appConfig.UsesFirebase() {
		fbApp, err = db.NewFirebaseApp(initCtx, appConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
		}
	}

	// --- 4. Store ---
	store, err := openStore(initCtx, appConfig, fbApp, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	closers = append(closers, namedCloser{"store", store})

	// --- 5. Text generation ---
	llmClient, err := newLLMClient(initCtx, appConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize text generation client", zap.Error(err))
	}
	if appConfig.RedisAddress != "" {
		redisCache, err := cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		closers = append(closers, namedCloser{"redis", redisCache})
		llmClient = llm.NewCachedClient(llmClient, redisCache, appConfig.CacheTTL, logger)
		logger.Info("Generation cache enabled", zap.Duration("ttl", appConfig.CacheTTL))
	}

	// --- 6. Events and mail ---
	events := core.NewLogEventPublisher(logger)
	if appConfig.RabbitMQURL != "" {
		mq, err := messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		closers = append(closers, namedCloser{"rabbitmq", mq})
		events = core.NewQueueEventPublisher(mq, appConfig.RabbitMQQueue, logger)
		logger.Info("Domain events published to RabbitMQ", zap.String("queue", appConfig.RabbitMQQueue))
	}

	var mail mailer.Mailer
	if appConfig.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     appConfig.SMTPHost,
			Port:     appConfig.SMTPPort,
			Username: appConfig.SMTPUsername,
			Password: appConfig.SMTPPassword,
			Sender:   appConfig.MailSender,
		})
		if err != nil {
			logger.Fatal("Failed to configure SMTP mailer", zap.Error(err))
		}
		mail = smtpMailer
	}

	// --- 7. Services ---
	subscriptionService := core.NewSubscriptionService(store)
	problemService := core.NewProblemService(
		store,
		core.NewAnalysisService(llmClient, logger),
		core.NewSolutionService(llmClient, logger),
		subscriptionService,
		events,
		appConfig.LLMTimeout,
		logger,
	)
	userService := core.NewUserService(store, mail, events, logger)
	insightsService := core.NewInsightsService(store)

	var authMW *middleware.AuthMiddleware
	if appConfig.RequireAuth {
		authClient, err := fbApp.Auth(initCtx)
		if err != nil {
			logger.Fatal("Failed to get Firebase Auth client", zap.Error(err))
		}
		authMW = middleware.NewAuthMiddleware(authClient, logger)
	}

	// --- 8. HTTP ---
	if appConfig.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.CORSMiddleware(appConfig))

	api.SetupRoutes(router, logger, problemService, userService, subscriptionService, insightsService, authMW)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Generation calls may take up to LLM_TIMEOUT each.
		WriteTimeout: appConfig.LLMTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 9. Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Warn("Failed to close resource", zap.String("resource", closers[i].name), zap.Error(err))
		}
	}
	logger.Info("Server exiting")
}

type namedCloser struct {
	name string
	io.Closer
}

func newLogger(release bool) (*zap.Logger, error) {
	if release {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func openStore(ctx context.Context, cfg *config.Config, app *firebase.App, logger *zap.Logger) (db.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		logger.Info("Using Firestore store", zap.String("projectId", cfg.FirebaseProjectID))
		return db.OpenFirestoreStore(ctx, app, logger)
	default:
		logger.Info("Using in-memory store; data is lost on restart")
		return db.NewMemoryStore(logger), nil
	}
}

func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}, logger)
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	default:
		logger.Warn("No text generation provider configured; serving demo data")
		return llm.NewDemoClient(logger), nil
	}
}
