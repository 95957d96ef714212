package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gramshield/dashboard/internal/cache"
	"github.com/gramshield/dashboard/internal/config"
	"github.com/gramshield/dashboard/internal/handlers"
	"github.com/gramshield/dashboard/internal/metrics"
	"github.com/gramshield/dashboard/internal/notify"
	"github.com/gramshield/dashboard/internal/platform"
	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/server"
	"github.com/gramshield/dashboard/internal/store"
)

// Version information
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "config/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	logger := initLogger()
	defer logger.Sync()

	if showVersion {
		logger.Info("GramShield Dashboard Service",
			zap.String("version", Version),
			zap.String("git_commit", GitCommit),
			zap.String("build_time", BuildTime))
		return
	}

	logger.Info("Starting GramShield Dashboard Service",
		zap.String("config_path", configPath),
		zap.String("version", Version))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("store_mode", cfg.Store.Mode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unreachable, continuing without it", zap.Error(err))
			rdb = nil
		}
	}

	stores := buildStores(cfg, rdb, logger)

	hub := realtime.NewHub(rdb, logger)
	go hub.Run(ctx)
	go hub.RelayFromRedis(ctx)

	notifier := notify.New(hub, logger)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	h := handlers.New(stores, cache.NewCaches(), hub, notifier, m, logger, handlers.Version{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	})

	srv := server.New(cfg, h, m, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("Shutdown complete")
}

// buildStores selects the record store backend from the configuration.
func buildStores(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) store.Stores {
	switch cfg.Store.Mode {
	case "platform":
		client := platform.New(platform.Config{
			BaseURL: cfg.Platform.BaseURL,
			APIKey:  cfg.Platform.APIKey,
			Timeout: time.Duration(cfg.Platform.Timeout) * time.Second,
		}, logger)
		return store.NewRemoteStores(store.RemoteOptions{
			Client:      client,
			Redis:       rdb,
			SnapshotTTL: time.Duration(cfg.Store.SnapshotTTL) * time.Second,
			Logger:      logger,
		})
	default:
		return store.NewMemoryStores(store.MemoryOptions{
			SimulateLatency: cfg.Store.SimulateLatency,
		})
	}
}

// initLogger initializes the application logger
func initLogger() *zap.Logger {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	var logger *zap.Logger
	var err error

	if env == "production" {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		logger, err = config.Build()
	} else {
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		logger, err = config.Build()
	}

	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	return logger
}
