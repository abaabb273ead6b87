package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/startupgps/server/internal/api"
	"github.com/startupgps/server/internal/config"
	"github.com/startupgps/server/internal/llm"
	"github.com/startupgps/server/internal/recommend"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.ChatModel, cfg.RecommendationModel)
	if err != nil {
		logger.Fatal("failed to create model client", zap.Error(err))
	}

	recommender := recommend.NewService(client, logger)

	limiter := api.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	server := api.NewServer(recommender, client, limiter, logger, cfg.ChatTimeout(), cfg.RecommendTimeout())

	httpServer := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     server.Router(),
		ReadTimeout: 15 * time.Second,
		// Write deadline must outlast the longest stream.
		WriteTimeout: cfg.RecommendTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting Startup GPS server", zap.String("addr", cfg.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed", zap.Error(err))
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
