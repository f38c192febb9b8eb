package repository

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// UserFilter filtros de listado. Campos vacíos no filtran.
type UserFilter struct {
	Role  string
	LabID string
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) si no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	// NamesByIDs resuelve id -> name para enriquecer listados; ids inexistentes se omiten.
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}
