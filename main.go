// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"fleet-admin/cmd"
	"fleet-admin/internal/data/repository"
	"fleet-admin/internal/usecase"
	"fleet-admin/internal/wire"
	"fleet-admin/pkg/cache"
	"fleet-admin/pkg/database"
	"fleet-admin/pkg/queue"
	"fleet-admin/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("remote_store", config.FleetAPI.BaseURL != ""),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	cacheSvc := initCache(ctx, config, logger)
	defer cacheSvc.Close()

	publisher := initPublisher(config, logger)
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, cacheSvc, publisher, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	go cleanSessions(ctx, app.Service.Auth, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

// initCache connects to redis when configured. Cached configurations from a
// previous run may carry an outdated layout, so they are dropped on start.
func initCache(ctx context.Context, config *utils.Config, logger *zap.Logger) cache.Service {
	if config.Redis.Addr == "" {
		logger.Info("Redis not configured, caching disabled")
		return cache.Noop{}
	}

	cacheSvc, err := cache.NewRedis(ctx, config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		return cache.Noop{}
	}

	if err := cacheSvc.DeletePattern(ctx, cache.ConfigurationPattern()); err != nil {
		logger.Warn("Failed to flush cached configurations", zap.Error(err))
	}

	logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	return cacheSvc
}

func initPublisher(config *utils.Config, logger *zap.Logger) queue.Publisher {
	if config.RabbitMQ.URL == "" {
		logger.Info("RabbitMQ not configured, events disabled")
		return queue.Noop{}
	}

	publisher, err := queue.NewRabbit(config.RabbitMQ, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, events disabled", zap.Error(err))
		return queue.Noop{}
	}

	logger.Info("RabbitMQ connected", zap.String("queue", config.RabbitMQ.Queue))
	return publisher
}

func cleanSessions(ctx context.Context, auth usecase.AuthService, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.CleanSessions(ctx); err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
			}
		}
	}
}
