package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/orders"
)

// OrderHandler ciclo de vida de órdenes de trabajo.
type OrderHandler struct {
	uc  *orders.OrderUseCase
	pdf *orders.PDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, pdf *orders.PDFUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear orden
// @Description  Doctor: la orden queda a su nombre en su laboratorio. Laboratorio: puede asignar un doctor propio vía doctorId.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateOrderRequest  true  "orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes visibles para el usuario
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        archived  query  string  false  "true, false o all"
// @Param        status    query  string  false  "estado"
// @Param        q         query  string  false  "búsqueda por paciente (sin acentos ni mayúsculas)"
// @Success      200       {array}   dto.OrderResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c), dto.OrderQuery{
		Archived: c.Query("archived"),
		Status:   c.Query("status"),
		Q:        c.Query("q"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByLab GET /api/labs/:id/orders
func (h *OrderHandler) ListByLab(c *fiber.Ctx) error {
	out, err := h.uc.ListByLab(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de orden
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar o desarchivar orden
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.ArchiveRequest  true  "archivado"
// @Success      200   {object}  dto.OrderResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Archive(c *fiber.Ctx) error {
	var in dto.ArchiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.Validate(); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetArchived(c.UserContext(), GetUser(c), c.Params("id"), *in.Archivado)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateProgress godoc
// @Summary      Avance de la orden (laboratorio)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID de la orden"
// @Param        body  body  dto.ProgressRequest  true  "status, progress_percentage"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/progress [put]
func (h *OrderHandler) UpdateProgress(c *fiber.Ctx) error {
	var in dto.ProgressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProgress(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Hoja de trabajo en PDF
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.Render(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}
