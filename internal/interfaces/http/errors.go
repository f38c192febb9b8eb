package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
)

// Mensaje genérico para errores no mapeados; el detalle solo va al log.
const internalMessage = "Internal server error"

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden relevante: el primer sentinel que coincide gana.
var errorTable = []errorMapping{
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrDoctorHasOrders, fiber.StatusBadRequest, "DOCTOR_HAS_ORDERS"},
	{domain.ErrDoctorNotFound, fiber.StatusBadRequest, "DOCTOR_NOT_FOUND"},
	{domain.ErrDoctorWithoutLab, fiber.StatusBadRequest, "DOCTOR_WITHOUT_LAB"},
	{domain.ErrInvalidRole, fiber.StatusBadRequest, "INVALID_ROLE"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrInvalidOdontogram, fiber.StatusBadRequest, "INVALID_ODONTOGRAM"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrMissingToken, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{domain.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrCrossTenantAssignment, fiber.StatusForbidden, "CROSS_TENANT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// errorStatus traduce un error de dominio a (status HTTP, código).
func errorStatus(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// fail escribe la respuesta de error para err. Los 500 se registran y no exponen detalle.
func fail(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return c.Status(status).JSON(dto.ErrorResponse{Error: internalMessage, Code: code})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

// badBody respuesta para cuerpos que no se pueden decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "datos inválidos", Code: "INVALID_BODY"})
}
