package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipeparser/internal/api"
	"recipeparser/internal/config"
	"recipeparser/internal/extract/sites"
	"recipeparser/internal/fetch"
	"recipeparser/internal/monitor"
	"recipeparser/internal/monitoring"
	"recipeparser/internal/parser"
	"recipeparser/internal/storage"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Initialize Storage Layer
	pgStore, err := storage.NewPostgresStore(cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pgStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := pgStore.EnsureSchema(ctx); err != nil {
		cancel()
		logger.Fatal("failed to ensure database schema", zap.Error(err))
	}
	cancel()

	var redisStore *storage.RedisStore
	var cache monitor.StatsCache
	var redisPinger api.Pinger
	if cfg.RedisAddr != "" {
		redisStore = storage.NewRedisStore(cfg.RedisAddr)
		cache = redisStore
		redisPinger = redisStore
	}

	// Initialize Monitoring
	metrics := monitoring.NewMetrics()
	mon := monitor.NewMonitor(pgStore, cache, metrics, logger)

	// Initialize Fetcher and Parsing Service
	fetcher := fetch.NewFetcher(time.Duration(cfg.FetchTimeout)*time.Second, logger)
	if cfg.BrowserFallback {
		fetcher = fetcher.WithBrowser(fetch.NewBrowserFetcher(time.Duration(cfg.FetchTimeout) * time.Second))
	}
	svc := parser.NewService(fetcher, sites.DefaultRegistry(logger), metrics, logger)

	// Initialize API Server
	server := api.NewServer(cfg, svc, mon, pgStore, redisPinger, metrics, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
