package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"enterprise-core/config"
	httpLayer "enterprise-core/http"
	"enterprise-core/logging"
	"enterprise-core/repository"
	"enterprise-core/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server exited")
}

func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.CacheRepository, func(), error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, using in-memory cache")
		return repository.NewMockCache(), func() {}, nil
	}

	cache, err := repository.NewRedisCache(ctx, repository.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.CacheTTL(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("redis cache connected", zap.String("addr", cfg.Redis.Addr))

	return cache, func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}, nil
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	kpiRepo := repository.NewKpiRepositoryMemory(cfg.History.Capacity)
	kpiService := service.NewKpiService(kpiRepo, cache, logger)
	kpiHandler := httpLayer.NewKpiHandler(kpiService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimitRefill())
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpLayer.NewRouter(kpiHandler, rateLimiter, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
