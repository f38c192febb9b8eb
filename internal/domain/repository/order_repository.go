package repository

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// OrderFilter filtros de listado de órdenes. Archived nil = todas.
type OrderFilter struct {
	DoctorID string
	LabID    string
	Status   string
	Archived *bool
}

// OrderRepository puerto de persistencia para Order.
type OrderRepository interface {
	// Create inserta la orden y completa OrderNumber, CreatedAt y UpdatedAt desde la DB.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// Update reescribe los campos mutables (último en escribir gana).
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	CountByDoctor(ctx context.Context, doctorID string) (int, error)
}
