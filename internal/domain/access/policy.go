// Package access concentra las reglas de visibilidad por rol sobre órdenes y doctores.
// Cada predicado aplica la misma verificación de tres ramas: doctor, laboratorio, superadmin.
package access

import (
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// Actor es el usuario autenticado reducido a lo que importa para autorizar.
// Es un tipo cerrado: SuperAdmin, LabUser o Doctor.
type Actor interface {
	ActorID() string
	Role() string
	isActor()
}

// SuperAdmin no tiene laboratorio y no está restringido.
type SuperAdmin struct{ ID string }

// LabUser opera sobre su propio laboratorio.
type LabUser struct {
	ID    string
	LabID string
}

// Doctor opera sobre sus propias órdenes. LabID puede estar vacío si aún no fue asignado.
type Doctor struct {
	ID    string
	LabID string
}

func (a SuperAdmin) ActorID() string { return a.ID }
func (a LabUser) ActorID() string    { return a.ID }
func (a Doctor) ActorID() string     { return a.ID }

func (SuperAdmin) Role() string { return entity.RoleSuperAdmin }
func (LabUser) Role() string    { return entity.RoleLaboratorio }
func (Doctor) Role() string     { return entity.RoleDoctor }

func (SuperAdmin) isActor() {}
func (LabUser) isActor()    {}
func (Doctor) isActor()     {}

// FromUser construye el Actor a partir del usuario resuelto desde DB.
func FromUser(u *entity.User) (Actor, error) {
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	switch u.Role {
	case entity.RoleSuperAdmin:
		return SuperAdmin{ID: u.ID}, nil
	case entity.RoleLaboratorio:
		return LabUser{ID: u.ID, LabID: u.LabIDValue()}, nil
	case entity.RoleDoctor:
		return Doctor{ID: u.ID, LabID: u.LabIDValue()}, nil
	}
	return nil, domain.ErrInvalidRole
}


// Scope filtro de visibilidad de órdenes. Vacío = sin restricción.
// None marca que el actor no ve ninguna orden y no debe consultarse el repositorio.
type Scope struct {
	DoctorID string
	LabID    string
	None     bool
}

// Unrestricted indica que el scope no filtra nada.
func (s Scope) Unrestricted() bool {
	return !s.None && s.DoctorID == "" && s.LabID == ""
}

// OrderScope devuelve el filtro de listado para el actor.
// Un laboratorio sin LabID recibe None, nunca un scope vacío.
func OrderScope(a Actor) Scope {
	switch v := a.(type) {
	case Doctor:
		return Scope{DoctorID: v.ID}
	case LabUser:
		if v.LabID == "" {
			return Scope{None: true}
		}
		return Scope{LabID: v.LabID}
	}
	return Scope{}
}

// CanReadOrder doctor: propia; laboratorio: de su lab; superadmin: todas.
func CanReadOrder(a Actor, o *entity.Order) bool {
	if o == nil {
		return false
	}
	switch v := a.(type) {
	case SuperAdmin:
		return true
	case LabUser:
		return v.LabID != "" && o.LabID == v.LabID
	case Doctor:
		return o.DoctorID != nil && *o.DoctorID == v.ID
	}
	return false
}

// CanWriteOrder mismas reglas que lectura: quien ve la orden puede editarla.
func CanWriteOrder(a Actor, o *entity.Order) bool {
	return CanReadOrder(a, o)
}

// CanArchiveOrder solo el doctor dueño o un laboratorio del mismo lab.
func CanArchiveOrder(a Actor, o *entity.Order) bool {
	if _, ok := a.(SuperAdmin); ok {
		return false
	}
	return CanReadOrder(a, o)
}

// CanUpdateProgress laboratorio del mismo lab o superadmin.
func CanUpdateProgress(a Actor, o *entity.Order) bool {
	if _, ok := a.(Doctor); ok {
		return false
	}
	return CanReadOrder(a, o)
}

// CanCreateOrder doctor o laboratorio.
func CanCreateOrder(a Actor) bool {
	switch a.(type) {
	case Doctor, LabUser:
		return true
	}
	return false
}

// CanManageDoctor laboratorio sobre doctores de su lab; superadmin sobre cualquiera.
func CanManageDoctor(a Actor, doctor *entity.User) bool {
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return false
	}
	switch v := a.(type) {
	case SuperAdmin:
		return true
	case LabUser:
		return v.LabID != "" && doctor.LabIDValue() == v.LabID
	}
	return false
}

// CanViewLab laboratorio sobre su propio lab; superadmin sobre cualquiera.
func CanViewLab(a Actor, labID string) bool {
	switch v := a.(type) {
	case SuperAdmin:
		return true
	case LabUser:
		return v.LabID != "" && v.LabID == labID
	}
	return false
}
