package main

// @title Doleances Backend API
// @version 1.0.0
// @description Backend de la plateforme de doléances: référentiel administratif de Madagascar,
// @description recherche de lieux (référentiel local + Nominatim), dépôt de doléances avec pièce jointe PDF,
// @description relais du chatbot et de l'inscription vers n8n.

// @contact.name ITDC Madagascar
// @contact.url https://itdcmada.com

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

	"go.uber.org/zap"

	_ "github.com/doleances-service/docs/swagger"
	"github.com/doleances-service/internal/config"
	httpDelivery "github.com/doleances-service/internal/delivery/http"
	"github.com/doleances-service/internal/delivery/http/handler"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/geodata"
	"github.com/doleances-service/internal/infrastructure/n8n"
	"github.com/doleances-service/internal/infrastructure/nominatim"
	"github.com/doleances-service/internal/locationsearch"
	"github.com/doleances-service/internal/pkg/logger"
	"github.com/doleances-service/internal/repository/cache"
	"github.com/doleances-service/internal/repository/chat"
	"github.com/doleances-service/internal/repository/postgres"
	redisRepo "github.com/doleances-service/internal/repository/redis"
	"github.com/doleances-service/internal/repository/storage"
	"github.com/doleances-service/internal/usecase"
	"github.com/doleances-service/internal/worker"
	chatWorker "github.com/doleances-service/internal/worker/chat"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Doleances Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("chat_store", cfg.Chat.Store),
		zap.Bool("storage_enabled", cfg.StorageEnabled()),
		zap.Bool("auth_required", cfg.Auth.Required),
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

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

	// 5. Object storage (optional)
	var (
		attachments repository.AttachmentStorage
		minioHealth handler.PingFunc
	)
	if cfg.StorageEnabled() {
		minioStorage, err := storage.NewMinIOStorage(ctx, &cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize MinIO", zap.Error(err))
		}
		attachments = minioStorage
		minioHealth = minioStorage.Health
	} else {
		log.Warn("MINIO_ENDPOINT is not set, attachments are rejected")
	}

	// 6. Initialize Repositories
	reportRepo := postgres.NewReportRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geoStore := geodata.NewStore(cfg.Geo.DataDir, log)

	var (
		chatRepo    repository.ChatRepository
		memoryStore *chat.MemoryStore
	)
	if cfg.Chat.Store == "redis" {
		chatRepo = chat.NewRedisStore(redisClient.Client(), cfg.Chat.TTL, log)
	} else {
		memoryStore = chat.NewMemoryStore(log)
		chatRepo = memoryStore
	}

	// Отчёты публикуются в стрим, только если их кто-то пересылает
	var streamRepo repository.StreamRepository
	if cfg.Worker.Enabled {
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), 0, log)
	}

	log.Info("Repositories initialized")

	// 7. External services
	nominatimClient := nominatim.NewClient(&cfg.Nominatim, log)
	n8nClient := n8n.NewClient(&cfg.N8N, log)

	// 8. Initialize Use Cases
	geoUC := usecase.NewGeoUseCase(geoStore, log)
	geocodeUC := usecase.NewGeocodeUseCase(
		nominatimClient,
		cacheRepo,
		cfg.Cache.SearchCacheTTL,
		cfg.Nominatim.CountryCodes,
		log,
	)
	searcher := locationsearch.NewSearcher(
		locationsearch.NewCatalog(geoStore, log),
		geocodeUC,
		locationsearch.Options{
			CountryCodes: cfg.Nominatim.CountryCodes,
			GeocodeLimit: cfg.Search.GeocodeLimit,
			MaxResults:   cfg.Search.MaxResults,
			Debounce:     cfg.Search.Debounce,
		},
		log,
	)
	locationUC := usecase.NewLocationSearchUseCase(searcher, log)
	reportUC := usecase.NewReportUseCase(
		reportRepo,
		attachments,
		streamRepo,
		cfg.Storage.AttachmentMaxBytes,
		log,
	)
	chatUC := usecase.NewChatUseCase(n8nClient, chatRepo, log)
	registrationUC := usecase.NewRegistrationUseCase(n8nClient, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers
	checks := map[string]handler.PingFunc{
		"postgres": db.Health,
		"redis":    redisClient.Health,
	}
	if minioHealth != nil {
		checks["minio"] = minioHealth
	}

	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Geo:    handler.NewGeoHandler(geoUC, cfg.Cache.GeoMaxAge, log),
		Search: handler.NewSearchHandler(geocodeUC, locationUC, log),
		Report: handler.NewReportHandler(reportUC, log),
		Chat:   handler.NewChatHandler(chatUC, log),
		Auth:   handler.NewAuthHandler(registrationUC, cfg.Auth.CookieName, log),
		Health: handler.NewHealthHandler(checks, log),
	})

	log.Info("HTTP server initialized")

	// 10. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	workerManager := worker.NewWorkerManager(log)
	if memoryStore != nil {
		workerManager.Register(chatWorker.NewJanitorWorker(memoryStore, cfg.Chat.TTL, cfg.Chat.SweepInterval, log))
	}
	if workerManager.Len() > 0 {
		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	stopWorkers()
	if workerManager.Len() > 0 {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
