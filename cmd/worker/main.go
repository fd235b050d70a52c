package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/safebag-backend/internal/config"
	"github.com/safebag-backend/internal/infrastructure/notifier"
	"github.com/safebag-backend/internal/pkg/logger"
	"github.com/safebag-backend/internal/repository/cache"
	redisRepo "github.com/safebag-backend/internal/repository/redis"
	"github.com/safebag-backend/internal/worker"
	"github.com/safebag-backend/internal/worker/alert"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting SOS Alert Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize worker
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	alertNotifier := notifier.NewLogNotifier(log)

	alertWorker := alert.NewAlertWorker(
		streamRepo,
		alertNotifier,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.EmptyQueueSleep,
		log,
	)

	manager := worker.NewWorkerManager(log)
	manager.Register(alertWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 5. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")
	cancel()

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown failed", zap.Error(err))
	}

	log.Info("Worker stopped")
}
