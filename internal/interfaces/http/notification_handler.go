package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
)

// NotificationHandler bandeja de notificaciones del usuario.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notificaciones del usuario (y de su laboratorio)
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), GetUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MarkRead PUT /api/notifications/:id/read → 204, o 404 si no es del usuario.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), GetUser(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
