package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sisbar-inventario/internal/application/report"
)

// ReportHandler exportaciones del inventario.
type ReportHandler struct {
	uc *report.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        category_id  query  string  false  "categoría"
// @Param        state        query  string  false  "AVAILABLE | LOW | OUT"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.InventoryPDF(c.UserContext(), c.Query("category_id"), c.Query("state"), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
