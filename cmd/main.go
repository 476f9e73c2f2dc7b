package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/daoexplorer/internal/ai"
	"github.com/bilgisen/daoexplorer/internal/api"
	"github.com/bilgisen/daoexplorer/internal/cache"
	"github.com/bilgisen/daoexplorer/internal/config"
	"github.com/bilgisen/daoexplorer/internal/explorer"
	"github.com/bilgisen/daoexplorer/internal/logger"
	"github.com/bilgisen/daoexplorer/internal/middleware"
	"github.com/bilgisen/daoexplorer/internal/snapshot"
	"github.com/bilgisen/daoexplorer/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := cfg.LogFile
	if output == "" {
		output = "stdout"
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.EffectiveLogLevel(),
		Output: output,
		Pretty: cfg.IsDevelopment(),
	}); err != nil {
		logger.Get().Warn().Err(err).Str("log_file", cfg.LogFile).Msg("Logging to stdout instead")
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting DAO Governance Explorer...")

	// Sessions live in Redis when configured, in memory otherwise
	var storage fiber.Storage
	if cfg.RedisURL != "" {
		redisStorage, err := cache.NewRedisStorage(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis session storage")
		}
		defer func() {
			log.Info().Msg("Closing Redis client...")
			if err := redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Redis client")
			}
		}()
		storage = redisStorage
	}
	flash := middleware.NewFlash(middleware.NewSessionStore(storage))

	source := snapshot.NewClient(cfg.SnapshotURL, cfg.SnapshotTimeout, cfg.ProposalLimit)

	summarizer := ai.NewSummarizer(ai.NewGenerator(cfg), ai.SummarizerConfig{
		Timeout:   cfg.AITimeout,
		MaxTokens: cfg.AIMaxTokens,
	})
	if !summarizer.Configured() {
		log.Warn().Str("provider", cfg.AIProvider).Msg("No AI API key configured, summaries are disabled")
	}

	exp := explorer.New(source, summarizer, explorer.Config{
		Limit:          cfg.ProposalLimit,
		MaxConcurrency: cfg.MaxConcurrency,
	})

	app := api.NewApp(api.NewHandlers(exp, summarizer, flash), api.AppConfig{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		CookieKey:    utils.CookieKey(cfg.SessionSecret),
	})

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
