package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelmint/reelmint/internal/ads"
	"github.com/reelmint/reelmint/internal/analytics"
	"github.com/reelmint/reelmint/internal/cache"
	"github.com/reelmint/reelmint/internal/config"
	"github.com/reelmint/reelmint/internal/database"
	"github.com/reelmint/reelmint/internal/generation"
	"github.com/reelmint/reelmint/internal/ledger"
	"github.com/reelmint/reelmint/internal/logging"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/middleware"
	"github.com/reelmint/reelmint/internal/moderation"
	"github.com/reelmint/reelmint/internal/queue"
)

// API bundles the handler dependencies.
type API struct {
	repo      *database.Repository
	cache     *cache.Cache
	ledger    *ledger.Service
	workflow  *generation.Workflow
	analytics *analytics.Service
	logger    *logging.Logger
	cfg       *config.Config
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config(cfg.Logging))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	redisCache, err := cache.NewCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	q, err := queue.New(cfg.Queue)
	if err != nil {
		logger.Fatalf("Failed to connect to queue: %v", err)
	}
	defer q.Close()

	wordSource := moderation.NewCachedWordSource(repo, redisCache, cfg.Generation.WordListTTL)
	filter := moderation.NewFilter(wordSource)

	backend := newBackend(cfg.Provider)

	api := &API{
		repo:   repo,
		cache:  redisCache,
		ledger: ledger.NewService(repo, ads.NewPolicy(), logger),
		workflow: generation.NewWorkflow(
			repo, q, backend, filter, redisCache, logger,
			cfg.Generation.MaxTotalSeconds, cfg.Generation.StatusCacheTTL,
		),
		analytics: analytics.NewService(repo),
		logger:    logger,
		cfg:       cfg,
	}

	router := setupRouter(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	metricsSrv := metrics.NewServer(cfg.Metrics.Port)
	go func() {
		logger.Infof("Starting metrics server on port %d", cfg.Metrics.Port)
		if err := metricsSrv.Start(); err != nil {
			logger.ErrorWithErr("Metrics server stopped", err)
		}
	}()

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		logger.ErrorWithErr("Metrics server shutdown failed", err)
	}

	logger.Info("Server stopped")
}

// newBackend selects the provider client. Without an endpoint the
// simulated backend serves local development.
func newBackend(cfg config.ProviderConfig) generation.VideoBackend {
	if cfg.Endpoint == "" {
		return generation.NewSimulatedBackend()
	}
	return generation.NewHTTPBackend(cfg)
}
