package seed

import (
	"context"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		labs repository.LaboratoryRepository,
		orders repository.OrderRepository,
	) error) error
}
