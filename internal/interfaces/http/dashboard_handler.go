package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sisbar-inventario/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el estado del inventario.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (totales por estado, valor del inventario,
// alertas sin leer, movimientos del día, categorías top, actividad reciente).
// pending_users solo se informa a quien puede aprobar usuarios.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
