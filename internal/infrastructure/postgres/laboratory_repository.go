package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

var _ repository.LaboratoryRepository = (*LaboratoryRepo)(nil)

const labColumns = `id, name, address, phone, email, status, created_at, updated_at`

// LaboratoryRepo implementación de LaboratoryRepository sobre PostgreSQL.
type LaboratoryRepo struct {
	db Querier
}

// NewLaboratoryRepository construye el repositorio.
func NewLaboratoryRepository(db Querier) *LaboratoryRepo {
	return &LaboratoryRepo{db: db}
}

func scanLab(row pgx.Row) (*entity.Laboratory, error) {
	var l entity.Laboratory
	if err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.Email, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LaboratoryRepo) Create(ctx context.Context, lab *entity.Laboratory) error {
	query := `INSERT INTO laboratories (` + labColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		lab.ID, lab.Name, lab.Address, lab.Phone, lab.Email, lab.Status, lab.CreatedAt, lab.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert laboratory: %w", err)
	}
	return nil
}

func (r *LaboratoryRepo) GetByID(ctx context.Context, id string) (*entity.Laboratory, error) {
	l, err := scanLab(r.db.QueryRow(ctx, `SELECT `+labColumns+` FROM laboratories WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get laboratory: %w", err)
	}
	return l, nil
}

// GetByName usado por el seeder para no duplicar laboratorios.
func (r *LaboratoryRepo) GetByName(ctx context.Context, name string) (*entity.Laboratory, error) {
	l, err := scanLab(r.db.QueryRow(ctx, `SELECT `+labColumns+` FROM laboratories WHERE name = $1 LIMIT 1`, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get laboratory by name: %w", err)
	}
	return l, nil
}

func (r *LaboratoryRepo) Update(ctx context.Context, lab *entity.Laboratory) error {
	query := `
		UPDATE laboratories SET name = $2, address = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, lab.ID, lab.Name, lab.Address, lab.Phone, lab.Email, lab.Status, lab.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update laboratory: %w", err)
	}
	return nil
}

func (r *LaboratoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM laboratories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete laboratory: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LaboratoryRepo) List(ctx context.Context) ([]*entity.Laboratory, error) {
	rows, err := r.db.Query(ctx, `SELECT `+labColumns+` FROM laboratories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list laboratories: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Laboratory, 0)
	for rows.Next() {
		l, err := scanLab(rows)
		if err != nil {
			return nil, fmt.Errorf("scan laboratory: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *LaboratoryRepo) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return namesByIDs(ctx, r.db, `SELECT id, name FROM laboratories WHERE id = ANY($1)`, ids)
}
