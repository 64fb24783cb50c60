package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/app789plates/plates-backend/config"
	"github.com/app789plates/plates-backend/internal/app/controller"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/db"
	"github.com/app789plates/plates-backend/internal/middleware"
	"github.com/app789plates/plates-backend/internal/router"
	"github.com/app789plates/plates-backend/internal/scheduler"
	"github.com/app789plates/plates-backend/internal/storage"
	"github.com/app789plates/plates-backend/pkg/logger"
	"github.com/app789plates/plates-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting 789PLATES Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; the search cache degrades to misses without it.
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	plateRepo := repository.NewPlateRepository(db.GetDB())
	patternRepo := repository.NewPatternRepository(db.GetDB())
	searchRepo := repository.NewSearchRepository(db.GetDB())
	socialRepo := repository.NewSocialRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	transferRepo := repository.NewTransferRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	hashtagRepo := repository.NewHashtagRepository(db.GetDB())

	// Initialize services
	plateService := service.NewPlateService(plateRepo)
	patternService := service.NewPatternService(patternRepo, plateRepo)
	searchService := service.NewSearchService(searchRepo, &cfg.Search)
	socialService := service.NewSocialService(socialRepo, plateRepo, storeRepo)
	storeService := service.NewStoreService(storeRepo)
	transferService := service.NewTransferService(transferRepo, plateRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)
	hashtagService := service.NewHashtagService(hashtagRepo, plateRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	plateController := controller.NewPlateController(plateService)
	searchController := controller.NewSearchController(searchService)
	socialController := controller.NewSocialController(socialService)
	storeController := controller.NewStoreController(storeService, plateService)
	transferController := controller.NewTransferController(transferService)
	ratingController := controller.NewRatingController(ratingService)
	hashtagController := controller.NewHashtagController(hashtagService)
	patternController := controller.NewPatternController(patternService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		plateController,
		searchController,
		socialController,
		storeController,
		transferController,
		ratingController,
		hashtagController,
		patternController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the nightly reclassification job
	reclassifyScheduler := scheduler.NewReclassifyScheduler(patternService, cfg.Search.ReclassifyCron)
	if err := reclassifyScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reclassification scheduler", err)
	}
	defer reclassifyScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
