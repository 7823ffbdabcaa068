package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pixelvault/pixelvault/internal/adapter/handler"
	"github.com/pixelvault/pixelvault/internal/adapter/repository"
	memoryrepo "github.com/pixelvault/pixelvault/internal/adapter/repository/memory"
	"github.com/pixelvault/pixelvault/internal/adapter/repository/postgres"
	blobstore "github.com/pixelvault/pixelvault/internal/adapter/storage"
	"github.com/pixelvault/pixelvault/internal/infrastructure/cache"
	"github.com/pixelvault/pixelvault/internal/infrastructure/config"
	"github.com/pixelvault/pixelvault/internal/infrastructure/database"
	"github.com/pixelvault/pixelvault/internal/infrastructure/observability"
	"github.com/pixelvault/pixelvault/internal/infrastructure/server"
	"github.com/pixelvault/pixelvault/internal/infrastructure/storage"
	"github.com/pixelvault/pixelvault/internal/pipeline"
	"github.com/pixelvault/pixelvault/internal/ratelimit"
	"github.com/pixelvault/pixelvault/internal/usecase/media"
	"github.com/pixelvault/pixelvault/internal/usecase/resource"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Repository
	var resourceRepo repository.ResourceRepository
	if cfg.Storage.Backend == "memory" {
		resourceRepo = memoryrepo.NewResourceRepo()
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := database.RunMigrations(ctx, pool, "migrations"); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		resourceRepo = postgres.NewResourceRepo(pool)
	}

	// Blob storage
	var blobs blobstore.BlobStorage
	if cfg.Storage.Backend == "memory" {
		blobs = storage.NewMemoryStorage()
	} else {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			logger.Fatal("failed to create s3 storage", zap.Error(err))
		}
		blobs = s3Storage
	}

	// Rate limiter
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Backend == "redis" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests, logger)
	} else {
		limiter = ratelimit.NewSlidingWindow(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	}

	// Pipeline
	renderer, err := pipeline.NewFreetypeRenderer()
	if err != nil {
		logger.Fatal("failed to create text renderer", zap.Error(err))
	}
	pipelinePool := pipeline.NewPool(pipeline.NewExecutor(renderer), cfg.Pipeline.Workers, cfg.Pipeline.QueueSize, logger)
	defer pipelinePool.Close()

	// Use cases
	resourceSvc := resource.NewService(resourceRepo, blobs, logger)
	mediaSvc := media.NewService(resourceRepo, blobs, pipelinePool, limiter, logger)

	// Handlers
	resourceHandler := handler.NewResourceHandler(resourceSvc)
	mediaHandler := handler.NewMediaHandler(mediaSvc)

	// Router
	router := server.NewRouter(server.RouterConfig{
		ResourceHandler: resourceHandler,
		MediaHandler:    mediaHandler,
		Logger:          logger,
		Environment:     cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
