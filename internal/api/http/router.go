package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/seatboard/internal/api/http/handlers"
	"github.com/spec-kit/seatboard/internal/auth"
	"github.com/spec-kit/seatboard/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Commands       *handlers.CommandHandler
	Board          *handlers.BoardHandler
	Scenarios      *handlers.ScenarioHandler
	Photos         *handlers.PhotoHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads need any role; changes need the operator role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleOperator, domain.RoleViewer))
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Get("/board", cfg.Board.Get)
	protected.Get("/board/export.xlsx", cfg.Board.Export)
	protected.Get("/scenarios", cfg.Scenarios.List)
	protected.Get("/employees/:id/photo", cfg.Photos.Get)
	protected.Post("/commands/parse", cfg.Commands.Parse)
	protected.Get("/metrics", cfg.Metrics.Get)

	operator := protected.Group("", auth.RequireOperator())
	operator.Post("/commands", cfg.Commands.Execute)
	operator.Patch("/scenarios/:id", cfg.Scenarios.Patch)
	operator.Patch("/departments/:id", cfg.Board.PatchDepartment)
	operator.Put("/employees/:id/photo", cfg.Photos.Put)
	operator.Delete("/employees/:id/photo", cfg.Photos.Delete)
	operator.Patch("/employees/:id/photo-position", cfg.Photos.PatchPosition)
	operator.Post("/photos/bulk", cfg.Photos.Bulk)
}
