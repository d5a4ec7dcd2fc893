package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"mediaapi/internal/auth"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// HealthCheck reports dependency health: the storage backend must be reachable.
func HealthCheck(store storage.Backend) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal; business logic lives in the service layer.
func RegisterRoutes(app *fiber.App, store storage.Backend, authn auth.Authenticator, uploadSvc service.UploadService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	// Every media operation is gated by bearer authentication.
	media := app.Group("/api/media", middleware.Auth(authn))
	media.Post("/upload", UploadMedia(uploadSvc))
	media.Get("/files", ListFiles(uploadSvc))
}
