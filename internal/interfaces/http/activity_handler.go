package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sisbar-inventario/internal/application/activity"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// ActivityHandler historial de actividad (protegido).
type ActivityHandler struct {
	recorder *activity.Recorder
}

func NewActivityHandler(recorder *activity.Recorder) *ActivityHandler {
	return &ActivityHandler{recorder: recorder}
}

// Mine godoc
// @Summary      Mi actividad reciente
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "default 50, máx. 500"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/activity/me [get]
func (h *ActivityHandler) Mine(c *fiber.Ctx) error {
	list, err := h.recorder.ListByUser(c.UserContext(), GetUserID(c), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Recent godoc
// @Summary      Actividad reciente de todos los usuarios (administradores y auditores)
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "filtrar por usuario"
// @Param        limit    query  int     false  "default 50, máx. 500"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	if userID := c.Query("user_id"); userID != "" {
		list, err := h.recorder.ListByUser(c.UserContext(), userID, c.QueryInt("limit"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(list)
	}
	list, err := h.recorder.ListRecent(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// activityViewers roles que ven la actividad de todos.
var activityViewers = []string{entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleAuditor}
