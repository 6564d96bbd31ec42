package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/handlers"
	"github.com/N4171k/45DOC/internal/migrations"
	"github.com/N4171k/45DOC/internal/routes"
	"github.com/N4171k/45DOC/internal/services"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Env, cfg.LogLevel)
	logger.Info().Str("environment", cfg.Env).Msg("Starting CodeStreak API...")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Database and Redis
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.AutoMigrate(database.DB); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// 2. Services
	var reviewer services.Reviewer
	if r, err := services.NewOpenAIReviewer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL); err != nil {
		logger.Warn().Err(err).Msg("AI code review disabled")
	} else {
		reviewer = r
	}
	flow := services.NewSubmissionFlow(
		services.NewGormSink(database.DB),
		completion.NewRedisStore(database.Redis),
	)
	handlers.InitServices(flow, reviewer)

	// 3. Start Server with graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      routes.NewRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	if database.Redis != nil {
		_ = database.Redis.Close()
	}

	logger.Info().Msg("Server exited gracefully")
}
