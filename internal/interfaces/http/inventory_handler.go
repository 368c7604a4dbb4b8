package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockLedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo al stock de un producto y registra el
//
//	asiento en el libro. Un decremento mayor que el stock actual se
//	recorta a 0 y el asiento refleja el delta efectivo.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, entry, err := h.uc.Adjust(c.Context(), inventory.AdjustInput{
		ProductID: in.ProductID,
		Delta:     in.Delta,
		Type:      entity.StockChangeAdjustment,
		Actor:     GetActor(c),
		Reason:    in.Reason,
		Clamp:     true,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		ProductID: product.ID,
		NewStock:  product.Stock,
		EntryID:   entry.ID,
	})
}

// Availability godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability/{id} [get]
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	stock, err := h.uc.Availability(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": c.Params("id"),
		"stock":      stock,
	})
}

// History godoc
// @Summary      Historial de movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Máximo de asientos (default y techo: 500)"
// @Success      200  {array}  entity.StockHistoryEntry
// @Router       /api/inventory/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	entries, err := h.uc.History(c.Context(), c.Query("product_id"), limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(entries),
		"history": entries,
	})
}
