// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"crossquote/internal/config"
	"crossquote/internal/events"
	"crossquote/internal/repositories"
	"crossquote/internal/routes"
	"crossquote/internal/utils"
	"crossquote/pkg/logger"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Initializes database connections (PostgreSQL + Redis)
// - Connects the Kafka event publisher
// - Configures routes
// - Starts the HTTP server and waits for a shutdown signal
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	utils.ConfigureJWT(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	if err := repositories.InitDB(cfg, zapLogger); err != nil {
		zapLogger.Fatal("init postgres", zap.Error(err))
	}
	if err := repositories.InitRedis(cfg, zapLogger); err != nil {
		zapLogger.Fatal("init redis", zap.Error(err))
	}

	publisher := events.NewPublisher(events.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic))

	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				zapLogger.Warn("close postgres", zap.Error(err))
			}
		}
		if err := repositories.RedisClient.Close(); err != nil {
			zapLogger.Warn("close redis", zap.Error(err))
		}
		if err := publisher.Close(); err != nil {
			zapLogger.Warn("close kafka writer", zap.Error(err))
		}
	}()

	// Create Fiber app
	app := fiber.New()

	app.Use(recover.New())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	// Request logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/register", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	app.Use("/api/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	routes.SetupRoutes(app, cfg, publisher, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLogger.Fatal("server stopped", zap.Error(err))
		}
	}()
	zapLogger.Info("server listening",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env))

	<-ctx.Done()
	zapLogger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		zapLogger.Error("shutdown", zap.Error(err))
	}
}
