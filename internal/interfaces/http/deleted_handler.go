package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sisbar-inventario/internal/application/usecase"
)

// DeletedHandler papelera de registros desactivados.
type DeletedHandler struct {
	uc *usecase.DeletedUseCase
}

// NewDeletedHandler construye el handler.
func NewDeletedHandler(uc *usecase.DeletedUseCase) *DeletedHandler {
	return &DeletedHandler{uc: uc}
}

// List godoc
// @Summary      Registros desactivados
// @Description  Productos, categorías, proveedores y usuarios inactivos. Se restauran con las rutas de activación de cada recurso.
// @Tags         deleted
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeletedItemsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/deleted [get]
func (h *DeletedHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
