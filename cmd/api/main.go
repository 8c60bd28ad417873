package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salonpos-api/internal/app"
	"github.com/sangkips/salonpos-api/internal/config"
	"github.com/sangkips/salonpos-api/internal/infrastructure/cache"
	"github.com/sangkips/salonpos-api/internal/infrastructure/database"
	"github.com/sangkips/salonpos-api/internal/presentation/http/handler"
	"github.com/sangkips/salonpos-api/pkg/lock"
	"github.com/sangkips/salonpos-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, log); err != nil {
		log.Warnf("Failed to seed default data: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := app.Deps{Config: cfg, DB: db, Log: log}
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		deps.Store = cache.NewRedisStore(rdb)
		deps.Locker = lock.NewRedisLocker(rdb, cfg.Engine.LockWait)
		deps.Checks = map[string]handler.HealthCheck{
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}
		log.Info("Using redis for drafts, loyalty cache and outlet locks")
	} else {
		// single instance only: locks do not span processes
		deps.Store = cache.NewMemoryStore()
		deps.Locker = lock.NewLocalLocker(cfg.Engine.LockWait)
		log.Warn("Redis disabled; using in-process store and locks")
	}

	application := app.New(deps)
	defer application.Close()
	go application.RunMaintenance(ctx, time.Hour)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("env", cfg.App.Env).Infof("Starting %s server on port %s", cfg.App.Name, port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	log.Info("Server exited")
}
