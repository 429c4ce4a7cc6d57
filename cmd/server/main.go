// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"time"

	"cardkeeper/internal/config"
	"cardkeeper/internal/logger"
	"cardkeeper/internal/repositories"
	"cardkeeper/internal/repositories/cache"
	"cardkeeper/internal/routes"
	"cardkeeper/internal/services/card"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Opens the connections the selected card backend needs
// - Configures routes
// - Starts the HTTP server
func main() {
	config.LoadEnv()
	cfg := config.Load()

	if err := logger.Init(config.IsProduction()); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Sync()

	factory, err := newBackendFactory(cfg)
	if err != nil {
		logger.Logger.Fatal("failed to configure card backend", zap.Error(err))
	}
	defer repositories.CloseDB()

	var (
		sink        card.SnapshotSink
		redisClient redis.UniversalClient
	)
	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := cache.HealthCheck(ctx, client)
		cancel()
		if err != nil {
			logger.Warning("redis unavailable, snapshots will not be cached",
				logger.LoggerOptions{Key: "error", Data: err.Error()},
			)
		} else {
			sink = cache.NewSnapshotCache(client, cfg.SnapshotTTL)
			redisClient = client
			logger.Info("Redis connected", logger.LoggerOptions{Key: "db", Data: cfg.Redis.DB})
		}
	}

	registry := card.NewRegistry(factory, sink, &card.LogMetricsCollector{})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE",
		AllowCredentials: true,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Card submissions reach the backend, throttle them per client
	app.Use("/api/cards", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		JWTSecret: cfg.JWTSecret,
		Registry:  registry,
		Redis:     redisClient,
	})

	logger.Info("starting server",
		logger.LoggerOptions{Key: "port", Data: cfg.Port},
		logger.LoggerOptions{Key: "backend", Data: cfg.CardBackend},
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", logger.LoggerOptions{Key: "error", Data: err.Error()})
	}
}
