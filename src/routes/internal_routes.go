package routes

import (
	"Backend-Worklink-007/src/controllers"
	"Backend-Worklink-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// InternalRoutes wires the scheduler-facing job endpoints. These are never
// guest-reachable: every call needs a service token with the jobs scope.
func InternalRoutes(app *fiber.App) {
	internal := app.Group("/internal/jobs", middleware.InternalAuth("jobs"))

	internal.Post("/retry-batch", controllers.RunRetryBatch)
	internal.Post("/retry-batch/enqueue", controllers.EnqueueRetryBatch)
	internal.Post("/cleanup", controllers.RunCleanup)
}
