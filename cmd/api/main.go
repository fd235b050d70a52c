package main

// @title SafeBag Backend API
// @version 1.0.0
// @description Backend for the SafeBag wearable safety device. Produces
// @description personal-risk assessments for a coordinate, plans dual
// @description (fastest + safest) travel routes, relays live device
// @description location and handles SOS escalation.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/safebag-backend/docs"
	"github.com/safebag-backend/internal/config"
	httpDelivery "github.com/safebag-backend/internal/delivery/http"
	"github.com/safebag-backend/internal/delivery/http/handler"
	"github.com/safebag-backend/internal/infrastructure/devicestore"
	"github.com/safebag-backend/internal/infrastructure/graphhopper"
	"github.com/safebag-backend/internal/infrastructure/notifier"
	"github.com/safebag-backend/internal/pkg/logger"
	"github.com/safebag-backend/internal/repository/cache"
	"github.com/safebag-backend/internal/repository/graph"
	"github.com/safebag-backend/internal/repository/model"
	"github.com/safebag-backend/internal/repository/postgres"
	redisRepo "github.com/safebag-backend/internal/repository/redis"
	"github.com/safebag-backend/internal/repository/spatial"
	"github.com/safebag-backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting SafeBag Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Load the static reference data
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	zoneRepo := postgres.NewZoneRepository(db)

	zones, err := zoneRepo.GetReferenceZones(startupCtx)
	if err != nil {
		log.Warn("Reference zones unavailable, scoring without spatial interpolation", zap.Error(err))
	}
	index := spatial.New(zones)
	log.Info("Spatial index built", zap.Int("zones", index.Size()))

	havens, err := zoneRepo.GetSafeHavens(startupCtx)
	if err != nil {
		log.Warn("Safe havens unavailable, override disabled", zap.Error(err))
	}
	log.Info("Safe havens loaded", zap.Int("count", len(havens)))

	// 6. Load the classifier artifacts. A missing model degrades the
	// assessment to Unknown instead of blocking startup.
	riskClf, err := model.Load(cfg.Model.RiskArtifactPath, log)
	if err != nil {
		log.Error("Risk classifier unavailable, assessments will degrade to Unknown", zap.Error(err))
	}
	incidentClf, err := model.Load(cfg.Model.IncidentArtifactPath, log)
	if err != nil {
		log.Error("Incident classifier unavailable", zap.Error(err))
	}

	// 7. Initialize repositories and boundary clients
	graphProvider := graph.NewProvider(postgres.NewGraphRepository(db), log)
	assessmentCache := cache.NewAssessmentCache(redisClient.Client(), cfg.Cache.AssessmentTTL, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	routeProvider := graphhopper.NewClient(&cfg.Routing, log)
	deviceStore := devicestore.NewClient(&cfg.DeviceStore, log)
	alertNotifier := notifier.NewLogNotifier(log)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	assessmentUC := usecase.NewAssessmentUseCase(
		riskClf,
		incidentClf,
		index,
		havens,
		zoneRepo,
		assessmentCache,
		cfg.Risk,
		log,
	)

	routeUC := usecase.NewRouteUseCase(graphProvider, routeProvider, log)

	sosUC := usecase.NewSOSUseCase(
		deviceStore,
		streamRepo,
		alertNotifier,
		cfg.DeviceStore.DeviceID,
		log,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers and server
	assessmentHandler := handler.NewAssessmentHandler(assessmentUC, log)
	routeHandler := handler.NewRouteHandler(routeUC, log)
	deviceHandler := handler.NewDeviceHandler(sosUC, log)

	server := httpDelivery.NewServer(cfg, log, assessmentHandler, routeHandler, deviceHandler)

	log.Info("HTTP server initialized")

	// 10. Start server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
