package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/access"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// DoctorUseCase gestión de doctores por laboratorio.
type DoctorUseCase struct {
	users  repository.UserRepository
	labs   repository.LaboratoryRepository
	orders repository.OrderRepository
}

// NewDoctorUseCase construye el caso de uso.
func NewDoctorUseCase(users repository.UserRepository, labs repository.LaboratoryRepository, orders repository.OrderRepository) *DoctorUseCase {
	return &DoctorUseCase{users: users, labs: labs, orders: orders}
}

// List laboratorio: doctores de su lab. Superadmin: todos o los de labID.
func (uc *DoctorUseCase) List(ctx context.Context, caller *entity.User, labID string) ([]dto.UserResponse, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	switch a := actor.(type) {
	case access.LabUser:
		if a.LabID == "" {
			return []dto.UserResponse{}, nil
		}
		labID = a.LabID
	case access.SuperAdmin:
	default:
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, labID)
}

// ListByLab doctores de un laboratorio concreto.
func (uc *DoctorUseCase) ListByLab(ctx context.Context, caller *entity.User, labID string) ([]dto.UserResponse, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	if !access.CanViewLab(actor, labID) {
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, labID)
}

func (uc *DoctorUseCase) list(ctx context.Context, labID string) ([]dto.UserResponse, error) {
	doctors, err := uc.users.List(ctx, repository.UserFilter{Role: entity.RoleDoctor, LabID: labID})
	if err != nil {
		return nil, err
	}
	return withLabNames(ctx, uc.labs, doctors)
}

// Create alta de doctor en el laboratorio del usuario autenticado.
func (uc *DoctorUseCase) Create(ctx context.Context, caller *entity.User, in dto.CreateDoctorRequest) (*dto.UserResponse, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	lab, ok := actor.(access.LabUser)
	if !ok || lab.LabID == "" {
		return nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	phone := in.Phone
	labID := lab.LabID
	doctor := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        &phone,
		Role:         entity.RoleDoctor,
		Status:       entity.StatusActive,
		LabID:        &labID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, doctor); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(doctor)
	return &out, nil
}

// managed carga el doctor y verifica que el actor pueda gestionarlo.
func (uc *DoctorUseCase) managed(ctx context.Context, caller *entity.User, id string) (*entity.User, error) {
	actor, err := access.FromUser(caller)
	if err != nil {
		return nil, err
	}
	doctor, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return nil, domain.ErrNotFound
	}
	if !access.CanManageDoctor(actor, doctor) {
		return nil, domain.ErrForbidden
	}
	return doctor, nil
}

// Update edición parcial de un doctor.
func (uc *DoctorUseCase) Update(ctx context.Context, caller *entity.User, id string, in dto.UpdateDoctorRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	doctor, err := uc.managed(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != doctor.Email {
			existing, err := uc.users.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != doctor.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			doctor.Email = email
		}
	}
	if in.Name != nil {
		doctor.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		doctor.Phone = in.Phone
	}
	if in.Status != nil {
		doctor.Status = *in.Status
	}
	doctor.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, doctor); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(doctor)
	return &out, nil
}

// Delete elimina un doctor sin órdenes. Con órdenes devuelve ErrDoctorHasOrders y no borra.
func (uc *DoctorUseCase) Delete(ctx context.Context, caller *entity.User, id string) error {
	doctor, err := uc.managed(ctx, caller, id)
	if err != nil {
		return err
	}
	n, err := uc.orders.CountByDoctor(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDoctorHasOrders
	}
	ok, err := uc.users.Delete(ctx, doctor.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
