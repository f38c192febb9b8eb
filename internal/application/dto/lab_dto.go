package dto

import (
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// LaboratoryRequest alta de laboratorio.
type LaboratoryRequest struct {
	Name    string  `json:"name" valid:"required~name es requerido"`
	Address string  `json:"address" valid:"required~address es requerido"`
	Phone   string  `json:"phone" valid:"required~phone es requerido"`
	Email   *string `json:"email"`
	Status  string  `json:"status" valid:"in(active|inactive)~status inválido"`
}

// Validate revisa campos requeridos y email opcional.
func (r LaboratoryRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Email != nil && *r.Email != "" && !govalidator.IsEmail(*r.Email) {
		return invalid("email inválido")
	}
	return nil
}

// UpdateLaboratoryRequest edición parcial.
type UpdateLaboratoryRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Status  *string `json:"status"`
}

// Validate revisa los campos presentes.
func (r UpdateLaboratoryRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return invalid("name no puede estar vacío")
	}
	if r.Email != nil && *r.Email != "" && !govalidator.IsEmail(*r.Email) {
		return invalid("email inválido")
	}
	if r.Status != nil && !entity.ValidStatus(*r.Status) {
		return invalid("status debe ser active o inactive")
	}
	return nil
}

// LaboratoryResponse salida de laboratorio.
type LaboratoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LabStatusResponse respuesta de PATCH /labs/:id/status.
type LabStatusResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewLaboratoryResponse mapea la entidad.
func NewLaboratoryResponse(l *entity.Laboratory) LaboratoryResponse {
	return LaboratoryResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Phone:     l.Phone,
		Email:     l.Email,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
