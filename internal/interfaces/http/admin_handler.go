package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/seed"
)

// HeaderInitSecret header exigido por init-test-data.
const HeaderInitSecret = "x-init-secret"

// AdminHandler endpoints de inicialización de datos.
type AdminHandler struct {
	seeder     *seed.Seeder
	initSecret string
}

// NewAdminHandler construye el handler. initSecret vacío o "disabled" deshabilita la siembra de prueba.
func NewAdminHandler(seeder *seed.Seeder, initSecret string) *AdminHandler {
	return &AdminHandler{seeder: seeder, initSecret: initSecret}
}

// InitProductionData godoc
// @Summary      Inicializar laboratorios y cuentas de producción
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitProductionRequest  true  "confirmInitialization"
// @Success      200   {object}  dto.SeedResult
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/init-production-data [post]
func (h *AdminHandler) InitProductionData(c *fiber.Ctx) error {
	var in dto.InitProductionRequest
	if err := c.BodyParser(&in); err != nil || in.ConfirmInitialization != dto.ProductionConfirmation {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "confirmación requerida",
			"code":     "CONFIRMATION_REQUIRED",
			"required": dto.ProductionConfirmation,
		})
	}
	return h.run(c, seed.Production)
}

// InitTestData godoc
// @Summary      Inicializar datos de prueba con órdenes demo
// @Tags         admin
// @Produce      json
// @Param        x-init-secret  header  string  true  "secreto de inicialización"
// @Success      200  {object}  dto.SeedResult
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/init-test-data [post]
func (h *AdminHandler) InitTestData(c *fiber.Ctx) error {
	if h.initSecret == "" || h.initSecret == "disabled" {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "inicialización de prueba deshabilitada", Code: "SEED_DISABLED"})
	}
	got := c.Get(HeaderInitSecret)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.initSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "secreto inválido", Code: "INVALID_SECRET"})
	}
	return h.run(c, seed.Test)
}

func (h *AdminHandler) run(c *fiber.Ctx, kind seed.Kind) error {
	res, err := h.seeder.Run(c.UserContext(), kind)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}
