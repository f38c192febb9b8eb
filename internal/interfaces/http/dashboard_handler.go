package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/architectonquantum-commits/LABDEN/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen de órdenes según el rol.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummary (total_orders, by_status, archived_orders, revenue, labs).
// Superadmin recibe además el bloque admin con laboratorios y usuarios por rol.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
