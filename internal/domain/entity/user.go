package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin  = "superadmin"
	RoleLaboratorio = "laboratorio"
	RoleDoctor      = "doctor"
)

// Estados de usuario y laboratorio.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User representa un usuario del sistema. Laboratorio y doctor pertenecen a un Laboratory vía LabID.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca se expone
	Phone        *string
	Role         string // superadmin, laboratorio, doctor
	Status       string // active, inactive
	LabID        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede operar.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// LabIDValue devuelve el LabID o "" si es nulo.
func (u *User) LabIDValue() string {
	if u.LabID == nil {
		return ""
	}
	return *u.LabID
}

// ValidRole indica si role pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleLaboratorio, RoleDoctor:
		return true
	}
	return false
}

// ValidStatus indica si status es active o inactive.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
