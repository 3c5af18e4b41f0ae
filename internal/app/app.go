package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"essaylab_backend/database"
	"essaylab_backend/internal/auth"
	"essaylab_backend/internal/cache"
	"essaylab_backend/internal/config"
	"essaylab_backend/internal/email"
	"essaylab_backend/internal/handlers"
	"essaylab_backend/internal/llm"
	"essaylab_backend/internal/logger"
	"essaylab_backend/internal/middleware"
	"essaylab_backend/internal/models"
	"essaylab_backend/internal/routes"
	"essaylab_backend/internal/services"
	"essaylab_backend/internal/workers"
	"essaylab_backend/ws"
)

// Run boots the full application: config, database, AI gateway, cache,
// email, websocket hub, background scheduler and the HTTP server. It
// blocks until SIGINT/SIGTERM and then shuts everything down in order.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	if err := database.SeedCatalog(gormDB); err != nil {
		logger.Fatal("Failed to seed college catalog", "error", err)
	}

	router, scheduler, manager := SetupRouter(cfg, gormDB)

	scheduler.Start()
	logger.Info("Background scheduler started")

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if err := scheduler.Stop(); err != nil {
		logger.Error("Scheduler shutdown error", "error", err)
	}
	manager.Stop()
	if err := sqlDB.Close(); err != nil {
		logger.Error("Database close error", "error", err)
	}
	logger.Info("Shutdown complete")
}

// SetupRouter assembles the gin engine with all dependencies. Split out
// from Run so tests can build a router against their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.Scheduler, *ws.WebSocketManager) {
	aiClient, err := llm.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize AI client", "error", err)
	}

	resultCache := buildCache(cfg)
	emailProvider := buildEmailProvider(cfg)

	manager := ws.NewWebSocketManager()
	go manager.Run()

	serviceContainer := services.NewServiceContainer(cfg, aiClient, resultCache, emailProvider, manager)
	appHandlers := handlers.NewAppHandlers(serviceContainer)

	scheduler, err := workers.NewScheduler(cfg, gormDB, serviceContainer.TrainingService)
	if err != nil {
		logger.Fatal("Failed to build scheduler", "error", err)
	}

	router := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(router, appHandlers, manager)

	return router, scheduler, manager
}

// buildCache prefers Redis and falls back to the in-process cache, so a
// missing Redis never blocks local development.
func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			logger.Info("Redis cache initialized", "addr", cfg.Redis.Addr)
			return redisCache
		}
		logger.Warn("Redis unavailable, using in-memory cache", "addr", cfg.Redis.Addr, "error", err)
	}
	return cache.NewMemoryCache()
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, using mock provider")
		return &email.MockProvider{}
	}

	provider, err := email.NewSMTPProvider(cfg, email.NewTemplateManager())
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	logger.Info("SMTP provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account so the approval
// workflow has somewhere to start. A no-op when the account exists or
// the credentials are not configured.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", cfg.FirstAdminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Email:         cfg.FirstAdminEmail,
			PasswordHash:  hash,
			Role:          models.UserRoleAdmin,
			AccountStatus: models.AccountStatusApproved,
			IsVerified:    true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}

		profile := &models.Profile{
			UserID:   admin.ID,
			FullName: "Platform Administrator",
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("create admin profile: %w", err)
		}

		logger.Info("Created first admin user", "email", cfg.FirstAdminEmail)
		return nil
	})
}
