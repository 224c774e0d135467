package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain"
)

// InventoryQueryHandler expone la superficie de solo lectura para dashboards:
// tareas, lotes y ledgers. Paginada y filtrable por producto/documento/fecha.
type InventoryQueryHandler struct {
	uc *inventory.QueryUseCase
}

// NewInventoryQueryHandler construye el handler.
func NewInventoryQueryHandler(uc *inventory.QueryUseCase) *InventoryQueryHandler {
	return &InventoryQueryHandler{uc: uc}
}

// ListTasks godoc
// @Summary      Listar tareas de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | completed | canceled"
// @Param        type    query  string  false  "inbound | outbound"
// @Success      200  {array}  dto.TaskResponse
// @Router       /api/inventory/tasks [get]
func (h *InventoryQueryHandler) ListTasks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	tasks, err := h.uc.ListTasks(c.Query("status"), c.Query("type"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"items": tasks, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetTask godoc
// @Summary      Detalle de una tarea con su auditoría
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/tasks/{id} [get]
func (h *InventoryQueryHandler) GetTask(c *fiber.Ctx) error {
	detail, err := h.uc.GetTask(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"task": detail.Task, "audit": detail.Audit})
}

// ListProductLots godoc
// @Summary      Lotes de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/products/{id}/lots [get]
func (h *InventoryQueryHandler) ListProductLots(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	lots, err := h.uc.ListLotsByProduct(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"items": lots, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// ListProductTransactions godoc
// @Summary      Ledger agregado de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "desde (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  false  "hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {array}  dto.ProductTransactionResponse
// @Router       /api/products/{id}/transactions [get]
func (h *InventoryQueryHandler) ListProductTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	var dates dto.DateRangeRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := c.QueryParser(&dates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	from, to, err := dates.Parse()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "rango de fechas inválido"})
	}

	txs, err := h.uc.ListProductTransactions(c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"items": txs, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// ListLotTransactions godoc
// @Summary      Ledger de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {array}  dto.LotTransactionResponse
// @Router       /api/lots/{id}/transactions [get]
func (h *InventoryQueryHandler) ListLotTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	txs, err := h.uc.ListLotTransactions(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"items": txs, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}
