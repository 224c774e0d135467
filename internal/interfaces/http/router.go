package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
)

// Roles aceptados por la API. La emisión de tokens es de un servicio externo.
const (
	RoleAdmin      = "admin"      // acceso total
	RoleWorkflow   = "workflow"   // servicio de documentos: dispara el procesamiento
	RoleDashboards = "dashboards" // solo lectura
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Completion *inventory.CompletionProcessor
	Query      *inventory.QueryUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todo va protegido con Bearer Token: el
// trigger solo para el workflow (y admin), las consultas para cualquier rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Trigger: el workflow de documentos llama aquí tras completar un documento.
	completionHandler := NewCompletionHandler(deps.Completion)
	api.Post("/documents/:id/complete",
		RequireRole(RoleAdmin, RoleWorkflow),
		completionHandler.Process,
	)

	// Superficie de consulta (dashboards, conciliación).
	queryHandler := NewInventoryQueryHandler(deps.Query)
	read := api.Group("/", RequireRole(RoleAdmin, RoleWorkflow, RoleDashboards))
	read.Get("/inventory/tasks", queryHandler.ListTasks)
	read.Get("/inventory/tasks/:id", queryHandler.GetTask)
	read.Get("/products/:id/lots", queryHandler.ListProductLots)
	read.Get("/products/:id/transactions", queryHandler.ListProductTransactions)
	read.Get("/lots/:id/transactions", queryHandler.ListLotTransactions)
}
