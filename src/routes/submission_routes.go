package routes

import (
	"Backend-Worklink-007/src/controllers"
	"Backend-Worklink-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmissionRoutes wires the operator-facing submission listing.
func SubmissionRoutes(app *fiber.App) {
	submissions := app.Group("/api/v1/submissions", middleware.InternalAuth("operator"))

	submissions.Get("/", controllers.GetSubmissions)
}
