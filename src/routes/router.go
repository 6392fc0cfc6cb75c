package routes

import (
	"Backend-Worklink-007/src/config"

	"github.com/gofiber/fiber/v2"
)

// InitRoutes registers every route group.
func InitRoutes(app *fiber.App, cfg *config.Config) {
	PublicRoutes(app, cfg)
	SubmissionRoutes(app)
	InternalRoutes(app)

	// liveness check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
