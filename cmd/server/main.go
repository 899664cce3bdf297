// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/avolkova/reviewbrain/internal/api/handlers"
	"github.com/avolkova/reviewbrain/internal/config"
	"github.com/avolkova/reviewbrain/internal/database"
	"github.com/avolkova/reviewbrain/internal/health"
	"github.com/avolkova/reviewbrain/internal/llm"
	"github.com/avolkova/reviewbrain/internal/middleware"
	"github.com/avolkova/reviewbrain/internal/repository"
	"github.com/avolkova/reviewbrain/internal/retrieval"
	"github.com/avolkova/reviewbrain/internal/services"
	"github.com/avolkova/reviewbrain/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Configuration validation failed")
	}

	dbManager, err := database.NewManager(&database.Config{
		DatabaseURL: cfg.Database.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	// Managed identity unless an API key is configured.
	var tokens llm.TokenProvider
	if cfg.AzureOpenAI.APIKey == "" {
		tokens, err = llm.NewAzureTokenProvider()
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize Azure credential")
		}
	}

	llmClient := llm.NewClient(llm.Config{
		Endpoint:   cfg.AzureOpenAI.Endpoint,
		Deployment: cfg.AzureOpenAI.Deployment,
		Model:      cfg.Model.Name,
		APIVersion: cfg.AzureOpenAI.APIVersion,
		APIKey:     cfg.AzureOpenAI.APIKey,
	}, tokens, logger)

	builder := retrieval.NewBuilder(cfg.Model.EmbeddingModel)
	executor := retrieval.NewExecutor(dbManager.DB, builder, logger)
	answers := services.NewAnswerService(executor, llmClient, logger,
		cfg.Search.ContextResults, cfg.Search.DefaultResults)

	queryLogs := repository.NewQueryLogRepository(dbManager.DB)
	askHandler := handlers.NewAskHandler(answers, queryLogs, logger)
	searchHandler := handlers.NewSearchHandler(answers, queryLogs, logger)
	healthChecker := health.NewChecker(dbManager, cfg, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(cfg.RateLimit.PerMinute).RateLimit())

	router.LoadHTMLGlob("templates/*.html")

	router.GET("/", askHandler.HandleIndex)
	router.GET("/favicon.ico", askHandler.HandleFavicon)
	router.POST("/hello", askHandler.HandleAsk)
	router.POST("/api/search", searchHandler.HandleSearch)
	router.GET("/api/queries/recent", searchHandler.HandleRecentQueries)
	router.GET("/health", healthChecker.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	logger.WithField("port", cfg.Server.Port).Info("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced server shutdown")
	}

	logger.Info("Server stopped")
}
