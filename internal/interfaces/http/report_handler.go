package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/almacen-api/internal/application/dto"
	"github.com/dcastano/almacen-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (solo lectura,
// protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockLevels godoc
// @Summary      Niveles de stock por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 10)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockLevels(c *fiber.Ctx) error {
	page := parsePage(c)
	resp, err := h.uc.StockLevels(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// LedgerAudit godoc
// @Summary      Auditoría del libro de movimientos
// @Description  Verifica producto por producto que la cantidad materializada sea igual a la cantidad inicial más la suma con signo de movimientos. Devuelve solo las filas con deriva.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerAuditResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/ledger [get]
func (h *ReportHandler) LedgerAudit(c *fiber.Ctx) error {
	resp, err := h.uc.LedgerAudit(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// StockLevelsPDF godoc
// @Summary      Reporte de niveles de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockLevelsPDF(c *fiber.Ctx) error {
	data, err := h.uc.StockLevelsPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := fmt.Sprintf("stock_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}
