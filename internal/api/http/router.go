package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-kit/registrar-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Tickets     *handlers.TicketsHandler
	Maintenance *handlers.MaintenanceHandler
	Classroom   *handlers.ClassroomHandler
	Logs        *handlers.LogsHandler
	Reports     *handlers.ReportsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Live)

	api.Post("/auth/login", cfg.Auth.Login)

	api.Post("/tickets", cfg.Tickets.Create)
	api.Get("/tickets", cfg.Tickets.List)
	api.Patch("/tickets/:id", cfg.Tickets.Update)
	api.Delete("/tickets/:id", cfg.Tickets.Delete)

	api.Post("/maintenance", cfg.Maintenance.Create)
	api.Get("/maintenance", cfg.Maintenance.List)
	api.Patch("/maintenance/:id", cfg.Maintenance.UpdateStatus)
	api.Delete("/maintenance/:id", cfg.Maintenance.Delete)

	api.Post("/classroom-tickets", cfg.Classroom.Create)
	api.Get("/classroom-tickets", cfg.Classroom.List)
	api.Patch("/classroom-tickets/:id", cfg.Classroom.UpdateStatus)
	api.Delete("/classroom-tickets/:id", cfg.Classroom.Delete)

	api.Post("/logs", cfg.Logs.Create)
	api.Post("/logs/signin", cfg.Logs.SignIn)
	api.Get("/logs", cfg.Logs.List)

	api.Get("/reports/weekly", cfg.Reports.Weekly)
	api.Get("/reports/monthly", cfg.Reports.Monthly)
}
