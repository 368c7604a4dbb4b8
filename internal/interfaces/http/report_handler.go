package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ledger-api/internal/application/usecase"
)

// defaultStockThreshold umbral de alerta cuando la query no lo indica.
const defaultStockThreshold = 5

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesSummary godoc
// @Summary      Resumen de ventas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial YYYY-MM-DD (inclusive)"
// @Param        to    query  string  true  "Fecha final YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	summary, err := h.uc.SalesSummary(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(summary)
}

// StockReport godoc
// @Summary      Productos en o por debajo del umbral de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de alerta (default 5)"
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", defaultStockThreshold)
	alerts, err := h.uc.StockReport(c.Context(), threshold)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(alerts),
		"alerts": alerts,
	})
}
