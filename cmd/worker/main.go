package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelmint/reelmint/internal/apperror"
	"github.com/reelmint/reelmint/internal/cache"
	"github.com/reelmint/reelmint/internal/config"
	"github.com/reelmint/reelmint/internal/database"
	"github.com/reelmint/reelmint/internal/generation"
	"github.com/reelmint/reelmint/internal/logging"
	"github.com/reelmint/reelmint/internal/metrics"
	"github.com/reelmint/reelmint/internal/moderation"
	"github.com/reelmint/reelmint/internal/queue"
)

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

	if err := q.SetupDeadLetterQueue(); err != nil {
		logger.Fatalf("Failed to set up dead letter queue: %v", err)
	}

	backend := newBackend(cfg.Provider)

	// The worker never submits, so the filter and publisher go unused
	// by RunJob; the workflow still carries them for a uniform wiring.
	wordSource := moderation.NewCachedWordSource(repo, redisCache, cfg.Generation.WordListTTL)
	workflow := generation.NewWorkflow(
		repo, q, backend, moderation.NewFilter(wordSource), redisCache, logger,
		cfg.Generation.MaxTotalSeconds, cfg.Generation.StatusCacheTTL,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down worker gracefully...")
		cancel()
	}()

	// Report queue depth while running
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if depth, err := q.GetQueueDepth(); err == nil {
					metrics.JobsQueueDepth.Set(float64(depth))
				}
				if depth, err := q.GetDLQDepth(); err == nil && depth > 0 {
					logger.Warnf("Dead letter queue holds %d messages", depth)
				}
			}
		}
	}()

	jobHandler := func(jobID string) error {
		jobLogger := logger.WithJobID(jobID)
		jobLogger.Info("Processing generation job")

		if err := workflow.RunJob(ctx, jobID); err != nil {
			jobLogger.ErrorWithErr("Failed to process job", err)

			// A job that no longer exists can never succeed on retry;
			// park it for operator inspection instead of requeuing.
			if apperror.IsKind(err, apperror.NotFound) {
				if dlqErr := q.PublishToDeadLetterQueue(ctx, jobID, err.Error()); dlqErr != nil {
					jobLogger.ErrorWithErr("Failed to dead-letter job", dlqErr)
				}
				return nil
			}
			return err
		}

		jobLogger.Info("Finished generation job")
		return nil
	}

	logger.Info("Worker started, waiting for jobs...")
	if err := q.ConsumeGenerationJobs(ctx, jobHandler); err != nil {
		logger.Fatalf("Failed to consume jobs: %v", err)
	}

	<-ctx.Done()
	logger.Info("Worker stopped")
}

// newBackend selects the provider client. Without an endpoint the
// simulated backend serves local development.
func newBackend(cfg config.ProviderConfig) generation.VideoBackend {
	if cfg.Endpoint == "" {
		return generation.NewSimulatedBackend()
	}
	return generation.NewHTTPBackend(cfg)
}
