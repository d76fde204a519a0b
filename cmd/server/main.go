package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	crmapp "github.com/verkoop/backend/internal/application/crm"
	"github.com/verkoop/backend/internal/infrastructure/config"
	"github.com/verkoop/backend/internal/infrastructure/logger"
	"github.com/verkoop/backend/internal/infrastructure/persistence"
	"github.com/verkoop/backend/internal/infrastructure/registry"
	"github.com/verkoop/backend/internal/interfaces/http/handler"
	"github.com/verkoop/backend/internal/interfaces/http/middleware"
	"github.com/verkoop/backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting verkoop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Wire repositories and transaction management
	repos := persistence.NewRepos(db.DB)
	txm := persistence.NewGormTxManager(db.DB)

	// Registry client for pull sync
	registryClient := registry.NewClient(cfg.Registry, log)

	// Application services
	syncService := crmapp.NewSyncService(txm, registryClient, log)
	assignmentService := crmapp.NewAssignmentService(txm, repos.Shadows, repos.Assignments, repos.Sellers, log)
	customerService := crmapp.NewCustomerService(repos.Shadows, repos.Assignments, repos.Sellers)
	sellerService := crmapp.NewSellerService(repos.Sellers, repos.Assignments)

	// HTTP handlers
	syncHandler := handler.NewSyncHandler(syncService)
	customerHandler := handler.NewCustomerHandler(customerService, assignmentService)
	sellerHandler := handler.NewSellerHandler(sellerService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, panic recovery, request logging,
	// security headers, CORS, then JWT on the API surface.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWT, cfg.IsDevelopment())
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddleware(jwtConfig))

	// Health endpoints (outside API versioning)
	systemHandler.RegisterSystemRoutes(engine)

	// API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(syncHandler).
		Register(customerHandler).
		Register(sellerHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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
