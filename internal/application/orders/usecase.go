// Package orders implementa el ciclo de vida de las órdenes de trabajo:
// alta por doctor o laboratorio, edición, archivo, avance y enriquecimiento con nombres.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/access"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/lifecycle"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/odontogram"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// Nombres usados cuando la referencia ya no existe.
const (
	UnknownDoctor = "Unknown Doctor"
	UnknownLab    = "Unknown Lab"
)

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	labs     repository.LaboratoryRepository
	notifier Notifier
	machine  lifecycle.Machine
	log      zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. strict activa la tabla de transiciones.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	labs repository.LaboratoryRepository,
	notifier Notifier,
	strict bool,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		users:    users,
		labs:     labs,
		notifier: notifier,
		machine:  lifecycle.Machine{Strict: strict},
		log:      log,
	}
}

// Create crea una orden. lab_id siempre sale del usuario autenticado.
//
// Doctor: la orden queda a su nombre y se notifica al laboratorio (new_order).
// Laboratorio: doctorId opcional, debe ser un doctor del mismo lab; se le notifica (order_assigned).
func (uc *OrderUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	if !access.CanCreateOrder(actor) {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := odontogram.Validate(in.Odontograma); err != nil {
		return nil, err
	}
	status := entity.OrderPendiente
	if in.Status != "" {
		if !lifecycle.Valid(in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		status = in.Status
	}

	var doctorID *string
	var labID string
	doctorName := UnknownDoctor
	switch a := actor.(type) {
	case access.Doctor:
		if a.LabID == "" {
			return nil, domain.ErrDoctorWithoutLab
		}
		id := a.ID
		doctorID, labID, doctorName = &id, a.LabID, caller.Name
	case access.LabUser:
		if a.LabID == "" {
			return nil, domain.ErrForbidden
		}
		labID = a.LabID
		if in.DoctorID != nil && *in.DoctorID != "" {
			doctor, err := uc.assignableDoctor(ctx, *in.DoctorID, a.LabID)
			if err != nil {
				return nil, err
			}
			id := doctor.ID
			doctorID, doctorName = &id, doctor.Name
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:                 uuid.New().String(),
		DoctorID:           doctorID,
		LabID:              labID,
		Status:             status,
		Value:              nullDecimal(in.Value),
		Services:           in.Services,
		Odontograma:        in.Odontograma,
		NombrePaciente:     strings.TrimSpace(in.NombrePaciente),
		Observaciones:      in.Observaciones,
		Instrucciones:      in.Instrucciones,
		ColorSustrato:      in.ColorSustrato,
		ColorTrabajo:       in.ColorTrabajo,
		Material:           in.Material,
		ProgressPercentage: "0",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("orders: create: %w", err)
	}

	switch actor.(type) {
	case access.Doctor:
		uc.notify(ctx, labID, entity.NotificationNewOrder,
			fmt.Sprintf("Nueva orden #%d de %s", order.OrderNumber, caller.Name))
	case access.LabUser:
		if doctorID != nil {
			uc.notify(ctx, *doctorID, entity.NotificationOrderAssigned,
				fmt.Sprintf("Se te asignó la orden #%d", order.OrderNumber))
		}
	}

	labName := UnknownLab
	if names, err := uc.labs.NamesByIDs(ctx, []string{labID}); err == nil {
		if n, ok := names[labID]; ok {
			labName = n
		}
	}
	out := dto.NewOrderResponse(order, doctorName, labName)
	return &out, nil
}

// assignableDoctor valida que doctorID exista, sea doctor y pertenezca a labID.
func (uc *OrderUseCase) assignableDoctor(ctx context.Context, doctorID, labID string) (*entity.User, error) {
	doctor, err := uc.users.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("orders: get doctor: %w", err)
	}
	if doctor == nil {
		return nil, domain.ErrDoctorNotFound
	}
	if doctor.Role != entity.RoleDoctor {
		return nil, domain.ErrInvalidRole
	}
	if doctor.LabIDValue() != labID {
		return nil, domain.ErrCrossTenantAssignment
	}
	return doctor, nil
}

// List lista las órdenes visibles para el usuario, enriquecidas.
func (uc *OrderUseCase) List(ctx context.Context, caller *entity.User, q dto.OrderQuery) ([]dto.OrderResponse, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	archived, err := q.ArchivedFilter()
	if err != nil {
		return nil, err
	}
	if q.Status != "" && !lifecycle.Valid(q.Status) {
		return nil, domain.ErrInvalidStatus
	}
	scope := access.OrderScope(actor)
	if scope.None {
		return []dto.OrderResponse{}, nil
	}
	list, err := uc.orders.List(ctx, repository.OrderFilter{
		DoctorID: scope.DoctorID,
		LabID:    scope.LabID,
		Status:   q.Status,
		Archived: archived,
	})
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return uc.enrich(ctx, matchPatient(list, q.Q))
}

// ListByLab órdenes de un laboratorio (superadmin). ErrNotFound si el lab no existe.
func (uc *OrderUseCase) ListByLab(ctx context.Context, labID string) ([]dto.OrderResponse, error) {
	lab, err := uc.labs.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.orders.List(ctx, repository.OrderFilter{LabID: labID})
	if err != nil {
		return nil, fmt.Errorf("orders: list by lab: %w", err)
	}
	return uc.enrich(ctx, list)
}

// Get devuelve una orden si el usuario puede verla.
func (uc *OrderUseCase) Get(ctx context.Context, caller *entity.User, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, caller, id, access.CanReadOrder)
	if err != nil {
		return nil, err
	}
	return uc.enrichOne(ctx, order)
}

// load obtiene la orden y aplica el predicado de acceso.
func (uc *OrderUseCase) load(ctx context.Context, caller *entity.User, id string, can func(access.Actor, *entity.Order) bool) (*entity.Order, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("orders: get: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !can(actor, order) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// Update edición parcial. No cambia lab_id, doctor_id, order_number ni archivado.
func (uc *OrderUseCase) Update(ctx context.Context, caller *entity.User, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	order, err := uc.load(ctx, caller, id, access.CanWriteOrder)
	if err != nil {
		return nil, err
	}
	prev := order.Status
	if in.Status != nil {
		if err := uc.machine.Check(order.Status, *in.Status); err != nil {
			return nil, err
		}
		order.Status = *in.Status
	}
	if in.Odontograma != nil {
		if err := odontogram.Validate(*in.Odontograma); err != nil {
			return nil, err
		}
		order.Odontograma = *in.Odontograma
	}
	if in.Value != nil {
		order.Value = nullDecimal(in.Value)
	}
	if in.Services != nil {
		order.Services = *in.Services
	}
	setIf(&order.NombrePaciente, in.NombrePaciente)
	setIf(&order.Observaciones, in.Observaciones)
	setIf(&order.Instrucciones, in.Instrucciones)
	setIf(&order.ColorSustrato, in.ColorSustrato)
	setIf(&order.ColorTrabajo, in.ColorTrabajo)
	setIf(&order.Material, in.Material)
	if in.Progress != nil && *in.Progress != "" {
		order.ProgressPercentage = in.Progress.Normalized()
	}
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("orders: update: %w", err)
	}
	uc.statusChanged(ctx, order, prev)
	return uc.enrichOne(ctx, order)
}

// SetArchived archiva o desarchiva. Sin cambio no escribe; nunca notifica.
func (uc *OrderUseCase) SetArchived(ctx context.Context, caller *entity.User, id string, archivado bool) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, caller, id, access.CanArchiveOrder)
	if err != nil {
		return nil, err
	}
	if order.Archivado != archivado {
		order.Archivado = archivado
		order.UpdatedAt = time.Now()
		if err := uc.orders.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("orders: archive: %w", err)
		}
		uc.log.Info().Str("order_id", id).Bool("archivado", archivado).Msg("order archive flag changed")
	}
	return uc.enrichOne(ctx, order)
}

// UpdateProgress cambia estado (por defecto en_proceso) y porcentaje de avance.
func (uc *OrderUseCase) UpdateProgress(ctx context.Context, caller *entity.User, id string, in dto.ProgressRequest) (*dto.OrderResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.OrderEnProceso
	}
	order, err := uc.load(ctx, caller, id, access.CanUpdateProgress)
	if err != nil {
		return nil, err
	}
	if err := uc.machine.Check(order.Status, status); err != nil {
		return nil, err
	}
	prev := order.Status
	order.Status = status
	if in.Progress != "" {
		order.ProgressPercentage = in.Progress.Normalized()
	}
	order.UpdatedAt = time.Now()
	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("orders: update progress: %w", err)
	}
	uc.statusChanged(ctx, order, prev)
	return uc.enrichOne(ctx, order)
}

func (uc *OrderUseCase) statusChanged(ctx context.Context, order *entity.Order, prev string) {
	if order.Status == prev || order.DoctorID == nil {
		return
	}
	uc.notify(ctx, *order.DoctorID, entity.NotificationOrderStatusChanged,
		fmt.Sprintf("Tu orden #%d cambió a %s", order.OrderNumber, order.Status))
}

// notify no propaga errores: la orden ya está guardada.
func (uc *OrderUseCase) notify(ctx context.Context, userID, kind, message string) {
	if err := uc.notifier.Notify(ctx, userID, kind, message); err != nil {
		uc.log.Warn().Err(err).Str("recipient", userID).Str("type", kind).Msg("notification failed")
	}
}

func (uc *OrderUseCase) enrichOne(ctx context.Context, order *entity.Order) (*dto.OrderResponse, error) {
	list, err := uc.enrich(ctx, []*entity.Order{order})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// enrich resuelve doctor_name y lab_name con una consulta por tabla.
func (uc *OrderUseCase) enrich(ctx context.Context, list []*entity.Order) ([]dto.OrderResponse, error) {
	doctorIDs := make([]string, 0, len(list))
	labIDs := make([]string, 0, len(list))
	for _, o := range list {
		if o.DoctorID != nil {
			doctorIDs = append(doctorIDs, *o.DoctorID)
		}
		labIDs = append(labIDs, o.LabID)
	}
	doctors, err := uc.users.NamesByIDs(ctx, unique(doctorIDs))
	if err != nil {
		return nil, fmt.Errorf("orders: doctor names: %w", err)
	}
	labs, err := uc.labs.NamesByIDs(ctx, unique(labIDs))
	if err != nil {
		return nil, fmt.Errorf("orders: lab names: %w", err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o, nameOr(doctors, o.DoctorIDValue(), UnknownDoctor), nameOr(labs, o.LabID, UnknownLab)))
	}
	return out, nil
}

func nameOr(names map[string]string, id, fallback string) string {
	if n, ok := names[id]; ok && id != "" {
		return n
	}
	return fallback
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}
