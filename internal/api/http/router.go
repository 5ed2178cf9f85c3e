package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafe-feedback/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Staff    *handlers.StaffHandler
	Feedback *handlers.FeedbackHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/staff", cfg.Staff.List)
	app.Post("/staff/import", cfg.Staff.Import)

	app.Post("/feedback", cfg.Feedback.Submit)

	adminGroup := app.Group("/admin")
	adminGroup.Get("/feedback", cfg.Admin.List)
	adminGroup.Get("/feedback/export", cfg.Admin.Export)
}
