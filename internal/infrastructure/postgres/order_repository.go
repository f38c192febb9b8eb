package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, doctor_id, lab_id, status, value, services, odontograma,
	nombre_paciente, observaciones, instrucciones, color_sustrato, color_trabajo, material,
	progress_percentage, archivado, created_at, updated_at`

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
// services y odontograma se guardan como JSONB.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el repositorio.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(
		&o.ID, &o.OrderNumber, &o.DoctorID, &o.LabID, &o.Status, &o.Value, &o.Services, &o.Odontograma,
		&o.NombrePaciente, &o.Observaciones, &o.Instrucciones, &o.ColorSustrato, &o.ColorTrabajo, &o.Material,
		&o.ProgressPercentage, &o.Archivado, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if o.Services == nil {
		o.Services = []string{}
	}
	if o.Odontograma == nil {
		o.Odontograma = entity.Odontogram{}
	}
	return &o, nil
}

// jsonDefaults evita escribir NULL en columnas JSONB NOT NULL.
func jsonDefaults(o *entity.Order) {
	if o.Services == nil {
		o.Services = []string{}
	}
	if o.Odontograma == nil {
		o.Odontograma = entity.Odontogram{}
	}
}

// Create inserta la orden; order_number y timestamps los asigna la base de datos.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	jsonDefaults(o)
	query := `
		INSERT INTO orders (id, doctor_id, lab_id, status, value, services, odontograma,
			nombre_paciente, observaciones, instrucciones, color_sustrato, color_trabajo, material,
			progress_percentage, archivado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING order_number, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		o.ID, o.DoctorID, o.LabID, o.Status, o.Value, o.Services, o.Odontograma,
		o.NombrePaciente, o.Observaciones, o.Instrucciones, o.ColorSustrato, o.ColorTrabajo, o.Material,
		o.ProgressPercentage, o.Archivado,
	).Scan(&o.OrderNumber, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update sin control de concurrencia optimista: el último en escribir gana.
// lab_id, doctor_id y order_number no se tocan.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	jsonDefaults(o)
	query := `
		UPDATE orders SET status = $2, value = $3, services = $4, odontograma = $5,
			nombre_paciente = $6, observaciones = $7, instrucciones = $8, color_sustrato = $9,
			color_trabajo = $10, material = $11, progress_percentage = $12, archivado = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.Status, o.Value, o.Services, o.Odontograma,
		o.NombrePaciente, o.Observaciones, o.Instrucciones, o.ColorSustrato,
		o.ColorTrabajo, o.Material, o.ProgressPercentage, o.Archivado, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// List devuelve las órdenes que cumplen el filtro, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var w where
	if f.DoctorID != "" {
		w.add("doctor_id = ?", f.DoctorID)
	}
	if f.LabID != "" {
		w.add("lab_id = ?", f.LabID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Archived != nil {
		w.add("archivado = ?", *f.Archived)
	}
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders`+w.sql()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE doctor_id = $1`, doctorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders by doctor: %w", err)
	}
	return n, nil
}
