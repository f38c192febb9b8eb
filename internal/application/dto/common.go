package dto

import (
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/architectonquantum-commits/LABDEN/internal/domain"
)

// ErrorResponse cuerpo de error HTTP: {"error": "...", "code": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// validateStruct aplica las etiquetas `valid:"..."` y envuelve el fallo en ErrInvalidInput.
func validateStruct(s interface{}) error {
	if _, err := govalidator.ValidateStruct(s); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}
