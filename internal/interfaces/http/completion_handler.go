package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain"
)

// CompletionHandler expone el trigger onDocumentCompleted: lo llama el workflow de
// documentos después de fijar durablemente status=completed.
type CompletionHandler struct {
	processor *inventory.CompletionProcessor
}

// NewCompletionHandler construye el handler.
func NewCompletionHandler(processor *inventory.CompletionProcessor) *CompletionHandler {
	return &CompletionHandler{processor: processor}
}

// Process godoc
// @Summary      Procesar inventario de un documento completado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ProcessResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/complete [post]
func (h *CompletionHandler) Process(c *fiber.Ctx) error {
	documentID := c.Params("id")
	actorID := GetUserID(c)

	result, err := h.processor.Process(c.Context(), documentID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		if errors.Is(err, domain.ErrDocumentNotCompleted) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_COMPLETED", Message: "el documento no está en estado completed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.ProcessResultResponse{
		Success:      result.Success,
		TaskID:       result.TaskID,
		LotsCreated:  result.LotsCreated,
		LotsDeducted: result.LotsDeducted,
		StockUpdated: result.StockUpdated,
		Warnings:     result.Warnings,
		Errors:       result.Errors,
	})
}
