package repository

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// LaboratoryRepository puerto de persistencia para Laboratory.
type LaboratoryRepository interface {
	Create(ctx context.Context, lab *entity.Laboratory) error
	GetByID(ctx context.Context, id string) (*entity.Laboratory, error)
	GetByName(ctx context.Context, name string) (*entity.Laboratory, error)
	Update(ctx context.Context, lab *entity.Laboratory) error
	// Delete no borra usuarios ni órdenes asociadas.
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Laboratory, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}
