package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"actadash/internal/blob"
	"actadash/internal/config"
	"actadash/internal/db"
	"actadash/internal/email"
	"actadash/internal/enrich"
	"actadash/internal/handlers/api"
	"actadash/internal/jobs"
	"actadash/internal/metrics"
	"actadash/internal/server"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		slog.Error("failed to load config file", "error", err)
		os.Exit(1)
	}
	yamlCfg.Apply(cfg)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Record store
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations completed")

	if cfg.SeedDevProjects && cfg.IsDev() {
		if err := database.SeedDevProjects(ctx); err != nil {
			logger.Warn("failed to seed development projects", "error", err)
		} else {
			logger.Info("seeded development projects")
		}
	}

	// Blob store
	var documents api.DocumentResolver
	var checker enrich.DocumentChecker
	if cfg.DocumentBucket != "" {
		backend, err := blob.NewS3Backend(ctx, cfg.AWSRegion, cfg.DocumentBucket)
		if err != nil {
			logger.Error("failed to create S3 client", "error", err)
			os.Exit(1)
		}
		headCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := backend.HeadBucket(headCtx); err != nil {
			logger.Warn("document bucket not reachable", "bucket", cfg.DocumentBucket, "error", err)
		}
		cancel()

		resolver, err := blob.NewResolverFromConfig(cfg, backend)
		if err != nil {
			logger.Error("invalid resolver configuration", "error", err)
			os.Exit(1)
		}
		documents = resolver
		checker = resolver
		logger.Info("document store configured", "bucket", cfg.DocumentBucket, "strategy", cfg.ResolverStrategy)
	} else {
		logger.Warn("document store disabled, S3_BUCKET not set")
	}

	// Document generation
	var generator api.Generator
	if cfg.IsGenerationEnabled() {
		dispatcher, store := jobs.NewRedisDispatcher(cfg.RedisURL, cfg.GenerationQueue, cfg.GenerationETA, cfg.GenerationJobTTL)
		defer store.Close()
		generator = dispatcher
		logger.Info("document generation enabled", "queue", cfg.GenerationQueue)
	} else {
		logger.Warn("document generation disabled, REDIS_URL not set")
	}

	metrics.Init(database)

	pipeline := enrich.New(checker, cfg.StalenessDays)
	notifier := email.NewNotifier(cfg, logger)

	srv := server.New(cfg, logger)
	srv.RegisterRoutes(server.Handlers{
		Health:     api.NewHealthHandler(cfg, database),
		Projects:   api.NewProjectsHandler(cfg, database, pipeline),
		Documents:  api.NewDocumentsHandler(documents, logger),
		Generation: api.NewGenerationHandler(database, generator, logger),
		Approval:   api.NewApprovalHandler(notifier),
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server exited")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
