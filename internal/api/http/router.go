package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suroriente/helpdesk-service/internal/api/http/handlers"
	"github.com/suroriente/helpdesk-service/internal/auth"
	"github.com/suroriente/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Supports       *handlers.SupportsHandler
	Reports        *handlers.ReportsHandler
	Catalog        *handlers.CatalogHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates only guard admin-owned
// surfaces; the per-ticket and reporting policies live in the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/estado", cfg.Tickets.StatusSummary)
	tickets.Get("/totales", cfg.Tickets.CategoryTotals)
	tickets.Patch("/:id/estado", cfg.Tickets.Transition)

	supports := app.Group("/supports", cfg.AuthMiddleware.Handle)
	supports.Post("/platform", cfg.Supports.CreatePlatform)
	supports.Get("/platform", cfg.Supports.ListPlatform)
	supports.Post("/other", cfg.Supports.CreateOther)
	supports.Get("/other", cfg.Supports.ListOther)
	supports.Post("/credit-note", cfg.Supports.CreateCreditNote)
	supports.Get("/credit-note", cfg.Supports.ListCreditNotes)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Get("/tickets", cfg.Reports.TicketsByPeriod)
	reports.Get("/monthly", cfg.Reports.MonthlySummary)
	reports.Get("/history", cfg.Reports.History)
	reports.Get("/dashboard", cfg.Reports.Dashboard)

	adminOnly := auth.RequireRole(domain.RoleAdmin)

	// Self-updates go through PUT without the role gate; the service
	// limits non-admins to their own profile fields.
	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Post("/", adminOnly, cfg.Users.Register)
	users.Get("/", adminOnly, cfg.Users.List)
	users.Get("/:id", adminOnly, cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Patch("/:id/active", adminOnly, cfg.Users.SetActive)
	users.Delete("/:id", adminOnly, cfg.Users.Delete)

	municipalities := app.Group("/municipalities", cfg.AuthMiddleware.Handle)
	municipalities.Get("/", cfg.Catalog.ListMunicipalities)
	municipalities.Post("/", adminOnly, cfg.Catalog.CreateMunicipality)
	municipalities.Put("/:id", adminOnly, cfg.Catalog.UpdateMunicipality)
	municipalities.Delete("/:id", adminOnly, cfg.Catalog.DeleteMunicipality)

	positions := app.Group("/positions", cfg.AuthMiddleware.Handle)
	positions.Get("/", cfg.Catalog.ListPositions)
	positions.Post("/", adminOnly, cfg.Catalog.CreatePosition)
	positions.Put("/:id", adminOnly, cfg.Catalog.UpdatePosition)
	positions.Delete("/:id", adminOnly, cfg.Catalog.DeletePosition)

	app.Get("/support-types", cfg.AuthMiddleware.Handle, cfg.Catalog.ListSupportTypes)
}
