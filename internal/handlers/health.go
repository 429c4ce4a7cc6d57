package handlers

import (
	"context"
	"time"

	"cardkeeper/internal/repositories"
	"cardkeeper/internal/repositories/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports the state of the optional Postgres and Redis connections.
// A nil redis client and an uninitialised repositories.DB are reported as "disabled".
type HealthHandler struct {
	redis redis.UniversalClient
}

func NewHealthHandler(client redis.UniversalClient) *HealthHandler {
	return &HealthHandler{redis: client}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	services := fiber.Map{
		"database": "disabled",
		"redis":    "disabled",
	}
	status := "ok"

	if repositories.DB != nil {
		services["database"] = "connected"
		sqlDB, err := repositories.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			services["database"] = "unavailable"
			status = "degraded"
		}
	}

	if h.redis != nil {
		services["redis"] = "connected"
		if err := cache.HealthCheck(ctx, h.redis); err != nil {
			services["redis"] = "unavailable"
			status = "degraded"
		}
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
