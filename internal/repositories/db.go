// Package repositories provides the data access layer: PostgreSQL models,
// Redis-backed order counters, and query helpers.
package repositories

import (
	"fmt"
	"log"
	"os"
	"time"

	"crossquote/internal/config"
	"crossquote/internal/models"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// InitDB connects to PostgreSQL with retry, tunes the connection pool, and
// migrates the schema.
func InitDB(cfg *config.Config, zapLogger *zap.Logger) error {
	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	zapLogger.Info("connecting to PostgreSQL")

	var db *gorm.DB
	err := backoff.RetryNotify(
		func() error {
			var err error
			db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
				Logger: gormLogger(),
			})
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("db handle: %w", err)
			}
			if err := sqlDB.Ping(); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		retryPolicy,
		func(err error, next time.Duration) {
			zapLogger.Warn("PostgreSQL connection failed, retrying",
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return fmt.Errorf("connect after retries: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	DB = db

	if err := DB.AutoMigrate(
		&models.Merchant{},
		&models.Quote{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	zapLogger.Info("PostgreSQL connected, schema migrated")
	return nil
}

func gormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
