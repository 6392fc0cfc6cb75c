package routes

import (
	"Backend-Worklink-007/src/config"
	"Backend-Worklink-007/src/controllers"
	"Backend-Worklink-007/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// PublicRoutes wires the guest-facing endpoints, each behind its own rate
// limiter (fetch is cheap, submit is not).
func PublicRoutes(app *fiber.App, cfg *config.Config) {
	fetchLimiter := middleware.NewRateLimiter(cfg.FetchWindow, cfg.FetchMax)
	submitLimiter := middleware.NewRateLimiter(cfg.SubmitWindow, cfg.SubmitMax)

	public := app.Group("/api/v1/public")

	public.Get("/forms/:token", middleware.Limit(fetchLimiter), controllers.GetPublicForm)
	public.Post("/forms/:token/submissions", middleware.Limit(submitLimiter), controllers.SubmitPublicForm)
}
