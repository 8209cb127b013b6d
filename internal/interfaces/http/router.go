package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labstock-api/internal/application/audit"
	"github.com/jhoicas/labstock-api/internal/application/auth"
	"github.com/jhoicas/labstock-api/internal/application/inventory"
	"github.com/jhoicas/labstock-api/internal/application/reports"
	"github.com/jhoicas/labstock-api/internal/application/transfer"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
)

// RouterDeps carries the router's dependencies.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	InventoryUC *inventory.UseCase
	TransferUC  *transfer.UseCase
	AuditUC     *audit.UseCase
	ReportsUC   *reports.UseCase
	LabRepo     repository.LabRepository
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Labs
	labs := protected.Group("/labs")
	labHandler := NewLabHandler(deps.LabRepo)
	labs.Get("/", labHandler.List)
	labs.Get("/code/:code", labHandler.GetByCode)
	labs.Post("/", RequireRole(entity.RoleAdmin), labHandler.Create)

	// Items
	itemHandler := NewItemHandler(deps.InventoryUC)
	labs.Get("/:id/items", itemHandler.ListByLab)
	items := protected.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/search", itemHandler.Search)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Transfers
	transferHandler := NewTransferHandler(deps.TransferUC)
	protected.Post("/transfers", transferHandler.Transfer)

	// History
	history := protected.Group("/history")
	auditHandler := NewAuditHandler(deps.AuditUC)
	history.Get("/transfers", auditHandler.ListTransfers)
	history.Get("/actions", auditHandler.ListActions)

	// Reports
	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/reports/labs/:code", reportHandler.Export)
}
