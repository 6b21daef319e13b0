package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/essentials/backend/internal/application/catalog"
	distributionapp "github.com/essentials/backend/internal/application/distribution"
	inventoryapp "github.com/essentials/backend/internal/application/inventory"
	"github.com/essentials/backend/internal/domain/shared"
	"github.com/essentials/backend/internal/domain/shared/clock"
	"github.com/essentials/backend/internal/infrastructure/config"
	"github.com/essentials/backend/internal/infrastructure/logger"
	"github.com/essentials/backend/internal/infrastructure/persistence"
	"github.com/essentials/backend/internal/interfaces/http/handler"
	"github.com/essentials/backend/internal/interfaces/http/middleware"
	"github.com/essentials/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting essentials backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	levelRepo := persistence.NewGormInventoryLevelRepository(db.DB)
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	distributionRepo := persistence.NewGormDistributionRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	locationRepo := persistence.NewGormStorageLocationRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)

	scope := persistence.NewGormTransactionScope(db.DB)
	clk := clock.System{}

	// Application services
	inventoryService := inventoryapp.NewInventoryService(scope, levelRepo, donationRepo, transferRepo, clk)
	distributionService := distributionapp.NewDistributionService(scope, distributionRepo, partnerRepo, locationRepo, clk)
	requestService := distributionapp.NewRequestService(scope, requestRepo, partnerRepo, clk)
	catalogService := catalogapp.NewCatalogService(orgRepo, itemRepo, locationRepo, partnerRepo)

	// Synchronous in-process event bus for cross-context integration
	eventBus := shared.NewInMemoryEventBus()
	inventoryService.SetEventPublisher(eventBus)
	distributionService.SetEventPublisher(eventBus)
	requestService.SetEventPublisher(eventBus)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.CORSWithConfig(corsConfig(cfg)),
	)
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
		}
	}

	engine.GET("/health", healthHandler(db))

	// All organization-scoped routes require the organization header
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithGroupMiddleware(middleware.OrganizationRequired()),
	)
	r.Register(handler.NewCatalogHandler(catalogService))
	r.Register(handler.NewInventoryHandler(inventoryService))
	r.Register(handler.NewDistributionHandler(distributionService))
	r.Register(handler.NewRequestHandler(requestService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
