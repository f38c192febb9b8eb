package dto

import (
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// RegisterRequest registro público. Solo roles laboratorio o doctor.
type RegisterRequest struct {
	Name     string  `json:"name" valid:"required~name es requerido"`
	Email    string  `json:"email" valid:"required~email es requerido,email~email inválido"`
	Password string  `json:"password" valid:"required~password es requerido,length(6|128)~password debe tener al menos 6 caracteres"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" valid:"required~role es requerido,in(laboratorio|doctor)~role inválido"`
	LabID    *string `json:"lab_id"`
}

// Validate revisa formato de campos.
func (r RegisterRequest) Validate() error {
	return validateStruct(r)
}

// CreateUserRequest alta de usuarios por superadmin (cualquier rol).
type CreateUserRequest struct {
	Name     string  `json:"name" valid:"required~name es requerido"`
	Email    string  `json:"email" valid:"required~email es requerido,email~email inválido"`
	Password string  `json:"password" valid:"required~password es requerido,length(6|128)~password debe tener al menos 6 caracteres"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" valid:"required~role es requerido,in(superadmin|laboratorio|doctor)~role inválido"`
	Status   string  `json:"status" valid:"in(active|inactive)~status inválido"`
	LabID    *string `json:"lab_id"`
}

// Validate revisa formato y que superadmin no lleve laboratorio.
func (r CreateUserRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.Role == entity.RoleSuperAdmin && r.LabID != nil && *r.LabID != "" {
		return invalid("superadmin no pertenece a un laboratorio")
	}
	return nil
}

// UpdateProfileRequest edición del propio perfil; campos nil no cambian.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// Validate revisa los campos presentes.
func (r UpdateProfileRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 2 {
		return invalid("name debe tener al menos 2 caracteres")
	}
	if r.Password != nil && len(*r.Password) < 6 {
		return invalid("password debe tener al menos 6 caracteres")
	}
	return nil
}

// StatusRequest cambio de estado active/inactive (usuarios y laboratorios).
type StatusRequest struct {
	Status string `json:"status"`
}

// Validate exige active o inactive.
func (r StatusRequest) Validate() error {
	if !entity.ValidStatus(r.Status) {
		return invalid("status debe ser active o inactive")
	}
	return nil
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	LabID     *string   `json:"lab_id"`
	LabName   *string   `json:"lab_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" valid:"required~email es requerido"`
	Password string `json:"password" valid:"required~password es requerido"`
}

// Validate exige email y password.
func (r LoginRequest) Validate() error {
	return validateStruct(r)
}

// LoginResponse token JWT (24h) + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateDoctorRequest alta de doctor por un laboratorio; lab_id se toma del usuario autenticado.
type CreateDoctorRequest struct {
	Name     string `json:"name" valid:"required~name es requerido"`
	Email    string `json:"email" valid:"required~email es requerido,email~email inválido"`
	Password string `json:"password" valid:"required~password es requerido,length(6|128)~password debe tener al menos 6 caracteres"`
	Phone    string `json:"phone" valid:"required~El teléfono es requerido,numeric~El teléfono debe contener solo números"`
}

// Validate revisa formato de campos.
func (r CreateDoctorRequest) Validate() error {
	return validateStruct(r)
}

// UpdateDoctorRequest edición parcial de un doctor.
type UpdateDoctorRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
}

// Validate revisa los campos presentes.
func (r UpdateDoctorRequest) Validate() error {
	if r.Name != nil && len(*r.Name) < 2 {
		return invalid("name debe tener al menos 2 caracteres")
	}
	if r.Email != nil && !govalidator.IsEmail(*r.Email) {
		return invalid("email inválido")
	}
	if r.Phone != nil && (len(*r.Phone) < 10 || !govalidator.IsNumeric(*r.Phone)) {
		return invalid("phone debe tener al menos 10 dígitos")
	}
	if r.Status != nil && !entity.ValidStatus(*r.Status) {
		return invalid("status debe ser active o inactive")
	}
	return nil
}

// NewUserResponse mapea la entidad a su vista pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		LabID:     u.LabID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
