package handlers

import (
	"crossquote/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	services := fiber.Map{
		"database": "connected",
		"redis":    "connected",
	}

	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		services["database"] = "unreachable"
		status = "degraded"
	}
	if err := repositories.RedisClient.Ping(c.Context()).Err(); err != nil {
		services["redis"] = "unreachable"
		status = "degraded"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}

// CounterStats reports connection pool health for the order counter store.
func CounterStats(c *fiber.Ctx) error {
	poolStats := repositories.RedisClient.PoolStats()

	return c.JSON(fiber.Map{
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}
