package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
)

// TransactionHandler maneja las peticiones HTTP de ventas (protegido).
type TransactionHandler struct {
	uc *sales.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *sales.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Commit godoc
// @Summary      Confirmar venta
// @Description  Descuenta el stock de todas las líneas como unidad y persiste
//
//	el recibo con subtotal, descuento, total, COGS y utilidad. Con
//	stock insuficiente en cualquier línea nada se muta.
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitTransactionRequest  true  "items, discount, payment_method"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.Commit(c.Context(), GetActor(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// List godoc
// @Summary      Listar ventas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial YYYY-MM-DD (inclusive)"
// @Param        to    query  string  false  "Fecha final YYYY-MM-DD (inclusive)"
// @Success      200  {array}  entity.Transaction
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	txs, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":        len(txs),
		"transactions": txs,
	})
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  entity.Transaction
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	tx, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(tx)
}

// Receipt godoc
// @Summary      Recibo PDF de una venta
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/pdf [get]
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
