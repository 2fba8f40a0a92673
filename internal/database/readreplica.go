package database

import (
	"fmt"
	"time"

	"steeple/internal/config"
	"steeple/internal/middleware"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var readReplica *gorm.DB

// GetReadDB returns the read replica connection, or nil when none is
// configured. Callers fall back to the primary.
func GetReadDB() *gorm.DB {
	return readReplica
}

// SetReadDB overrides the read replica connection, used by tests.
func SetReadDB(db *gorm.DB) {
	readReplica = db
}

// ConnectReadReplica opens the read replica connection when DB_READ_HOST is
// set. Replica failures are non-fatal: reads simply fall back to the primary.
func ConnectReadReplica(cfg *config.Config) {
	if cfg.DBReadHost == "" {
		readReplica = nil
		return
	}

	sslMode := cfg.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBReadHost,
		cfg.DBReadPort,
		cfg.DBReadUser,
		cfg.DBReadPassword,
		cfg.DBName,
		sslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: &CustomGormLogger{
			logger: middleware.Logger,
			Config: logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		},
	})
	if err != nil {
		middleware.Logger.Warn("Read replica unavailable, reads use primary", "error", err.Error())
		readReplica = nil
		return
	}

	if err := configurePool(db, cfg); err != nil {
		middleware.Logger.Warn("Read replica pool configuration failed", "error", err.Error())
	}

	readReplica = db
	middleware.Logger.Info("Read replica connected successfully")
}
