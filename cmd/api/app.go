package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/config"
	"jobflix-backend/internal/repository"
	"jobflix-backend/internal/repository/seed"
	"jobflix-backend/pkg/logger"
	"jobflix-backend/pkg/redis"
)

// bootstrap loads configuration, sets up logging and opens the configured store.
func bootstrap(ctx context.Context) (*config.Config, *repository.Repositories, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.LogLevel)

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, repos, nil
}

func migrateAndSeed(ctx context.Context, repos *repository.Repositories, withSeed bool) error {
	if err := repos.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s store: %w", repos.Driver, err)
	}
	logger.Log.Info("Schema ready", "storage", repos.Driver)

	if !withSeed {
		return nil
	}
	loaded, err := seed.Load(ctx, repos.Companies, repos.Jobs)
	if err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	if loaded {
		logger.Log.Info("Sample catalog loaded", "storage", repos.Driver)
	}
	return nil
}

// connectRedis is best effort: without Redis the cache is off and rate limits stay in memory.
func connectRedis(cfg *config.Config) {
	err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case err == nil:
		logger.Log.Info("Redis connected")
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, using in-memory rate limiting")
	default:
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
