package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apothekehub/backend/internal/application/backup"
	catalogapp "github.com/apothekehub/backend/internal/application/catalog"
	contentapp "github.com/apothekehub/backend/internal/application/content"
	"github.com/apothekehub/backend/internal/application/feedsync"
	"github.com/apothekehub/backend/internal/infrastructure/cache"
	"github.com/apothekehub/backend/internal/infrastructure/config"
	"github.com/apothekehub/backend/internal/infrastructure/event"
	"github.com/apothekehub/backend/internal/infrastructure/feed"
	"github.com/apothekehub/backend/internal/infrastructure/logger"
	"github.com/apothekehub/backend/internal/infrastructure/persistence"
	"github.com/apothekehub/backend/internal/infrastructure/scheduler"
	"github.com/apothekehub/backend/internal/infrastructure/storage"
	"github.com/apothekehub/backend/internal/interfaces/http/handler"
	"github.com/apothekehub/backend/internal/interfaces/http/middleware"
	"github.com/apothekehub/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(200*time.Millisecond),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	taxonomyRepo := persistence.NewGormFeedTaxonomyRepository(db.DB)
	historyRepo := persistence.NewGormSyncHistoryRepository(db.DB)
	backupRepo := persistence.NewGormMarketingBackupRepository(db.DB)
	galleryRepo := persistence.NewGormGalleryImageRepository(db.DB)
	galleryBackupRepo := persistence.NewGormGalleryBackupRepository(db.DB)
	newsRepo := persistence.NewGormNewsPostRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)

	// Event bus with domain event handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(contentapp.NewSyncNewsHandler(newsRepo, log))
	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := eventBus.Start(busCtx); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}

	// Sync lock. Redis-backed when enabled so concurrent deployments
	// share the lock; in-memory otherwise.
	lockFactory := cache.NewSyncLockFactory(cfg.Redis, cache.WithLogger(log))
	syncLock, err := lockFactory.CreateLock()
	if err != nil {
		log.Fatal("failed to create sync lock", zap.Error(err))
	}
	defer func() {
		if err := syncLock.Close(); err != nil {
			log.Error("failed to close sync lock", zap.Error(err))
		}
	}()

	// Object storage for gallery images
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("object storage provider is not s3, using stub storage",
			zap.String("provider", cfg.Storage.Provider))
		objectStorage = storage.NewStubObjectStorage()
	}

	// Feed client
	feedClient := feed.NewClient(feed.WithTimeout(cfg.Feed.FetchTimeout))

	// Application services
	backupService := backup.NewService(productRepo, backupRepo, galleryRepo, galleryBackupRepo, log)
	productService := catalogapp.NewProductService(productRepo, backupService, eventBus)
	galleryService := catalogapp.NewGalleryService(galleryRepo, productRepo, objectStorage)
	if cfg.Storage.PresignExpiry > 0 {
		galleryConfig := catalogapp.DefaultGalleryServiceConfig()
		galleryConfig.UploadURLExpiry = cfg.Storage.PresignExpiry
		galleryService.SetConfig(galleryConfig)
	}
	taxonomyService := catalogapp.NewTaxonomyService(taxonomyRepo)

	txManager := persistence.NewGormTransactionManager(db)
	syncService := feedsync.NewSyncService(
		feedClient,
		txManager,
		historyRepo,
		syncLock,
		eventBus,
		feedsync.SyncServiceConfig{
			DefaultFeedURL: cfg.Feed.URL,
			BatchSize:      cfg.Feed.BatchSize,
			LockTTL:        cfg.Feed.LockTTL,
		},
		log,
	)
	historyService := feedsync.NewHistoryService(historyRepo)
	orphanService := feedsync.NewOrphanService(productRepo, feedClient, backupService, eventBus, cfg.Feed.URL, log)

	newsService := contentapp.NewNewsService(newsRepo)
	opportunityService := contentapp.NewOpportunityService(opportunityRepo)

	// Background scheduler for periodic feed syncs
	var (
		jobScheduler *scheduler.Scheduler
		syncTrigger  *scheduler.SyncTrigger
	)
	if cfg.Scheduler.Enabled {
		executor := feedsync.NewJobExecutor(syncService, orphanService, log)
		jobScheduler = scheduler.NewScheduler(scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, executor, log)

		schedCtx, schedCancel := context.WithCancel(context.Background())
		defer schedCancel()
		if err := jobScheduler.Start(schedCtx); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}

		triggerConfig := scheduler.DefaultSyncTriggerConfig()
		if cfg.Scheduler.SyncInterval > 0 {
			triggerConfig.SyncInterval = cfg.Scheduler.SyncInterval
		}
		syncTrigger = scheduler.NewSyncTrigger(triggerConfig, jobScheduler, log)
		if err := syncTrigger.Start(schedCtx); err != nil {
			log.Fatal("failed to start sync trigger", zap.Error(err))
		}
		log.Info("feed sync scheduler started",
			zap.Duration("interval", triggerConfig.SyncInterval))
	}

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)
	syncHandler := handler.NewSyncHandler(syncService, historyService)
	orphanHandler := handler.NewOrphanHandler(orphanService)
	backupHandler := handler.NewBackupHandler(backupService)
	newsHandler := handler.NewNewsHandler(newsService)
	opportunityHandler := handler.NewOpportunityHandler(opportunityService)
	systemHandler := handler.NewSystemHandler(db)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", healthHandler(db))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogGroup := router.NewDomainGroup("catalog", "/catalog")
	catalogGroup.POST("/products", productHandler.Create)
	catalogGroup.GET("/products", productHandler.List)
	catalogGroup.GET("/products/top", productHandler.ListTop)
	catalogGroup.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogGroup.GET("/products/:id", productHandler.GetByID)
	catalogGroup.PUT("/products/:id/marketing", productHandler.UpdateMarketing)
	catalogGroup.PUT("/products/:id/top", productHandler.SetTopStatus)
	catalogGroup.PUT("/products/:id/sku", productHandler.AssignSKU)
	catalogGroup.DELETE("/products/:id", productHandler.Delete)
	catalogGroup.POST("/products/:id/gallery/upload-url", galleryHandler.RequestUpload)
	catalogGroup.POST("/products/:id/gallery", galleryHandler.ConfirmUpload)
	catalogGroup.GET("/products/:id/gallery", galleryHandler.List)
	catalogGroup.PUT("/gallery/:imageId/tags", galleryHandler.SetTags)
	catalogGroup.DELETE("/gallery/:imageId", galleryHandler.Delete)
	catalogGroup.POST("/products/:id/backup", backupHandler.BackupProduct)
	catalogGroup.POST("/products/:id/restore", backupHandler.RestoreProduct)
	catalogGroup.GET("/taxonomy", taxonomyHandler.List)
	catalogGroup.GET("/taxonomy/:category", taxonomyHandler.GetCategory)
	r.Register(catalogGroup)

	syncGroup := router.NewDomainGroup("sync", "/sync")
	syncGroup.POST("", syncHandler.TriggerSync)
	syncGroup.GET("/history", syncHandler.ListHistory)
	syncGroup.GET("/history/latest", syncHandler.GetLatestRun)
	syncGroup.GET("/history/:id", syncHandler.GetRun)
	r.Register(syncGroup)

	orphanGroup := router.NewDomainGroup("orphans", "/orphans")
	orphanGroup.POST("/check", orphanHandler.Check)
	orphanGroup.DELETE("", orphanHandler.Delete)
	r.Register(orphanGroup)

	backupGroup := router.NewDomainGroup("backups", "/backups")
	backupGroup.GET("", backupHandler.List)
	backupGroup.POST("/restore", backupHandler.RestoreAll)
	r.Register(backupGroup)

	newsGroup := router.NewDomainGroup("news", "/news")
	newsGroup.POST("", newsHandler.Create)
	newsGroup.GET("", newsHandler.List)
	newsGroup.GET("/:id", newsHandler.GetByID)
	newsGroup.PUT("/:id", newsHandler.Update)
	newsGroup.PUT("/:id/pin", newsHandler.SetPinned)
	newsGroup.DELETE("/:id", newsHandler.Delete)
	r.Register(newsGroup)

	opportunityGroup := router.NewDomainGroup("opportunities", "/opportunities")
	opportunityGroup.POST("", opportunityHandler.Create)
	opportunityGroup.GET("", opportunityHandler.List)
	opportunityGroup.GET("/slug/:slug", opportunityHandler.GetBySlug)
	opportunityGroup.GET("/:id", opportunityHandler.GetByID)
	opportunityGroup.PUT("/:id", opportunityHandler.Update)
	opportunityGroup.DELETE("/:id", opportunityHandler.Delete)
	r.Register(opportunityGroup)

	systemGroup := router.NewDomainGroup("system", "/system")
	systemGroup.GET("/info", systemHandler.GetSystemInfo)
	systemGroup.GET("/ping", systemHandler.Ping)
	systemGroup.GET("/health", systemHandler.Health)
	r.Register(systemGroup)

	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if syncTrigger != nil {
		syncTrigger.Stop()
	}
	if jobScheduler != nil {
		if err := jobScheduler.Stop(shutdownCtx); err != nil {
			log.Error("failed to stop scheduler", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop event bus", zap.Error(err))
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// healthHandler reports liveness for load balancers. The richer check
// lives under /api/v1/system/health.
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			log.Error("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
