package repositories

import (
	"context"
	"fmt"

	"crossquote/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient is the global Redis client. It backs the per-merchant order
// counters; quote responses and fee schedules are never cached.
var RedisClient *redis.Client

// InitRedis connects the global Redis client and verifies the connection.
func InitRedis(cfg *config.Config, logger *zap.Logger) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := RedisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("Redis connection verified", zap.String("addr", cfg.RedisAddr))
	return nil
}
