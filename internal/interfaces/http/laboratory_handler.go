package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
)

// LaboratoryHandler CRUD de laboratorios (solo superadmin).
type LaboratoryHandler struct {
	uc *usecase.LaboratoryUseCase
}

// NewLaboratoryHandler construye el handler.
func NewLaboratoryHandler(uc *usecase.LaboratoryUseCase) *LaboratoryHandler {
	return &LaboratoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear laboratorio
// @Tags         labs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.LaboratoryRequest  true  "laboratorio"
// @Success      201   {object}  dto.LaboratoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/labs [post]
func (h *LaboratoryHandler) Create(c *fiber.Ctx) error {
	var in dto.LaboratoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar laboratorios
// @Tags         labs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.LaboratoryResponse
// @Router       /api/labs [get]
func (h *LaboratoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener laboratorio
// @Tags         labs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del laboratorio"
// @Success      200  {object}  dto.LaboratoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labs/{id} [get]
func (h *LaboratoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/labs/:id
func (h *LaboratoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLaboratoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/labs/:id
func (h *LaboratoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStatus godoc
// @Summary      Activar o desactivar laboratorio
// @Tags         labs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "ID del laboratorio"
// @Param        body  body  dto.StatusRequest  true  "status"
// @Success      200   {object}  dto.LabStatusResponse
// @Router       /api/labs/{id}/status [patch]
func (h *LaboratoryHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
