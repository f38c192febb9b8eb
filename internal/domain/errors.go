package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Autenticación.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrMissingToken       = errors.New("token requerido")
	ErrInvalidToken       = errors.New("token inválido o expirado")

	// Ciclo de vida de órdenes.
	ErrDoctorNotFound        = errors.New("doctor no encontrado")
	ErrInvalidRole           = errors.New("rol inválido")
	ErrCrossTenantAssignment = errors.New("no se pueden asignar órdenes a doctores de otros laboratorios")
	ErrDoctorWithoutLab      = errors.New("el doctor no tiene laboratorio asignado")
	ErrDoctorHasOrders       = errors.New("no se puede eliminar un doctor con órdenes existentes")
	ErrInvalidStatus         = errors.New("estado de orden inválido")
	ErrInvalidTransition     = errors.New("transición de estado no permitida")
	ErrInvalidOdontogram     = errors.New("odontograma inválido")
)
