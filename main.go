package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"marketmuse_backend/config"
	"marketmuse_backend/logger"
	"marketmuse_backend/middleware"
	"marketmuse_backend/models"
	"marketmuse_backend/routes"
	"marketmuse_backend/scheduler"
	"marketmuse_backend/services"
	"marketmuse_backend/services/finnhub"
	"marketmuse_backend/services/ratelimit"
	"marketmuse_backend/services/stockcache"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	zlog, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	zlog.Info("MarketMuse Backend API - Starting...", zap.String("env", cfg.App.Env))

	// Initialize database connection
	db, err := config.InitDB(cfg, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			zlog.Warn("Failed to close database", zap.Error(err))
			return
		}
		zlog.Info("Database connection closed")
	}()

	// Run database migrations
	if err := runMigrations(db); err != nil {
		return err
	}

	if cfg.Finnhub.APIKey == "" {
		zlog.Warn("FINNHUB_API_KEY is not set, upstream requests will be rejected")
	}

	// Every upstream request shares one token bucket
	limiter := ratelimit.PerMinute(cfg.Finnhub.MaxRPM, cfg.Finnhub.Burst)
	fetcher := finnhub.NewClient(cfg.Finnhub.APIKey,
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithHTTPClient(ratelimit.NewHTTPClient(&http.Client{Timeout: cfg.Finnhub.Timeout}, limiter)),
		finnhub.WithLogger(zlog.Named("finnhub")),
	)

	store := stockcache.NewStore(db)
	cursor := stockcache.NewCursorStore(db)
	auditLog := stockcache.NewRefreshLog(db)

	stockService := services.NewStockService(db, store, fetcher, zlog.Named("stocks"))
	watchlistService := services.NewWatchlistService(db, store)
	userService := services.NewUserService(db, cfg.Auth.AdminEmails)

	refresher := scheduler.NewRefresher(store, cursor, auditLog, fetcher,
		cfg.Refresh.Interval, cfg.Refresh.LogRetention, zlog.Named("refresher"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.App.CORSOrigins))
	router.Use(middleware.RequestLogger(zlog.Named("http")))

	routes.SetupRoutes(router, routes.Deps{
		DB:        db,
		Stocks:    stockService,
		Watchlist: watchlistService,
		Users:     userService,
		Auth:      middleware.NewAuth(cfg.Auth.JWTSecret, userService, zlog.Named("auth")),
		AuditLog:  auditLog,
		Refresher: refresher,
	})

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.App.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("Server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var jobScheduler *scheduler.Scheduler
	if cfg.Refresh.Enabled {
		// Seed once before the first refresh tick; the server is already serving the cache
		stockService.SeedMissing(ctx, cfg.Refresh.SeedSymbols)

		jobScheduler = scheduler.NewScheduler(refresher, stockService,
			cfg.Refresh.SeedSymbols, cfg.Refresh.SeedEvery, zlog.Named("scheduler"))
		if err := jobScheduler.Start(ctx); err != nil {
			gracefulShutdown(server, nil, zlog)
			return err
		}
	} else {
		zlog.Warn("Refresh scheduler disabled")
	}

	select {
	case <-ctx.Done():
		zlog.Info("Shutdown signal received, shutting down gracefully...")
	case err := <-serverErr:
		if err != nil {
			stop()
			gracefulShutdown(server, jobScheduler, zlog)
			return err
		}
	}

	gracefulShutdown(server, jobScheduler, zlog)
	return nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	if err := models.MigrateStockModels(db); err != nil {
		return fmt.Errorf("stock migrations: %w", err)
	}
	if err := models.MigrateUserModels(db); err != nil {
		return fmt.Errorf("user migrations: %w", err)
	}
	return nil
}

// gracefulShutdown stops the refresh loop first, then drains the HTTP server
func gracefulShutdown(server *http.Server, jobScheduler *scheduler.Scheduler, zlog *zap.Logger) {
	// Stop scheduler first; waits for an in-flight tick to finish
	if jobScheduler != nil {
		jobScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Warn("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server shutdown completed")
}
