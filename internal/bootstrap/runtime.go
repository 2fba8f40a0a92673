// Package bootstrap wires up the runtime dependencies shared by the server
// and the CLI tools.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"steeple/internal/cache"
	"steeple/internal/config"
	"steeple/internal/database"
	"steeple/internal/models"
	"steeple/internal/observability"
	"steeple/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with demo
	// congregations. Ignored outside the development environment.
	SeedDemoData bool
}

// InitRuntime connects to the database, the read replica and Redis, starts
// tracing when enabled, and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	database.ConnectReadReplica(cfg)

	// Redis is optional; a nil client degrades to direct DB reads.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if cfg.TracingEnabled {
		if _, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:  "steeple-api",
			Environment:  cfg.Env,
			Enabled:      true,
			Exporter:     cfg.TraceExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TraceSampler,
		}); err != nil {
			return nil, nil, fmt.Errorf("tracing init failed: %w", err)
		}
	}

	if opts.SeedDemoData {
		if err := seedIfEmpty(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("demo seeding failed: %w", err)
		}
	}

	return db, r, nil
}

// seedIfEmpty seeds demo congregations once, and only in development. A
// database with any church at all is left alone.
func seedIfEmpty(cfg *config.Config, db *gorm.DB) error {
	if !strings.EqualFold(cfg.Env, "development") {
		log.Printf("skipping demo seed in %s environment", cfg.Env)
		return nil
	}

	var count int64
	if err := db.Model(&models.Church{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return seed.Seed(db, seed.DefaultOptions())
}
