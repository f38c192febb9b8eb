package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
)

// DoctorHandler gestión de doctores por parte del laboratorio.
type DoctorHandler struct {
	uc *usecase.DoctorUseCase
}

// NewDoctorHandler construye el handler.
func NewDoctorHandler(uc *usecase.DoctorUseCase) *DoctorHandler {
	return &DoctorHandler{uc: uc}
}

// List godoc
// @Summary      Listar doctores
// @Description  Laboratorio: doctores de su laboratorio. Superadmin: todos o filtrados por lab_id.
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        lab_id  query  string  false  "filtro de laboratorio (superadmin)"
// @Success      200     {array}   dto.UserResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/doctors [get]
func (h *DoctorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c), c.Query("lab_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByLab GET /api/labs/:id/doctors
func (h *DoctorHandler) ListByLab(c *fiber.Ctx) error {
	out, err := h.uc.ListByLab(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear doctor en el laboratorio del usuario
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDoctorRequest  true  "doctor"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/doctors [post]
func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDoctorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/doctors/:id
func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDoctorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar doctor sin órdenes
// @Tags         doctors
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del doctor"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUser(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
