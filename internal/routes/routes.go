// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"cardkeeper/internal/handlers"
	"cardkeeper/internal/middleware"
	"cardkeeper/internal/services/card"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Dependencies carries what the routes need from main.
type Dependencies struct {
	JWTSecret string
	Registry  *card.Registry
	// Redis is optional; leave nil when caching is disabled.
	Redis redis.UniversalClient
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	auth := middleware.NewAuthMiddleware(deps.JWTSecret)
	cardHandler := handlers.NewCardHandler(deps.Registry)
	healthHandler := handlers.NewHealthHandler(deps.Redis)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	// Static segments are registered before "/:id" so they are not taken as ids
	cards := api.Group("/cards", auth.Handler)
	cards.Get("/", cardHandler.GetCards)
	cards.Post("/", cardHandler.AddCard)
	cards.Delete("/", cardHandler.ClearCards)
	cards.Delete("/error", cardHandler.ClearError)
	cards.Delete("/:id", cardHandler.RemoveCard)
	cards.Put("/:id/default", cardHandler.SetDefaultCard)
}
