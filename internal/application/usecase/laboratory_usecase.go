package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// LaboratoryUseCase CRUD de laboratorios (superadmin).
type LaboratoryUseCase struct {
	repo repository.LaboratoryRepository
}

// NewLaboratoryUseCase construye el caso de uso.
func NewLaboratoryUseCase(repo repository.LaboratoryRepository) *LaboratoryUseCase {
	return &LaboratoryUseCase{repo: repo}
}

// Create crea un laboratorio; status por defecto active.
func (uc *LaboratoryUseCase) Create(ctx context.Context, in dto.LaboratoryRequest) (*dto.LaboratoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now()
	lab := &entity.Laboratory{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, lab); err != nil {
		return nil, err
	}
	out := dto.NewLaboratoryResponse(lab)
	return &out, nil
}

// GetByID obtiene un laboratorio.
func (uc *LaboratoryUseCase) GetByID(ctx context.Context, id string) (*dto.LaboratoryResponse, error) {
	lab, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewLaboratoryResponse(lab)
	return &out, nil
}

func (uc *LaboratoryUseCase) get(ctx context.Context, id string) (*entity.Laboratory, error) {
	lab, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	return lab, nil
}

// Update actualiza los campos presentes.
func (uc *LaboratoryUseCase) Update(ctx context.Context, id string, in dto.UpdateLaboratoryRequest) (*dto.LaboratoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	lab, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		lab.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		lab.Address = *in.Address
	}
	if in.Phone != nil {
		lab.Phone = *in.Phone
	}
	if in.Email != nil {
		lab.Email = in.Email
	}
	if in.Status != nil {
		lab.Status = *in.Status
	}
	lab.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, lab); err != nil {
		return nil, err
	}
	out := dto.NewLaboratoryResponse(lab)
	return &out, nil
}

// Delete elimina el laboratorio. Usuarios y órdenes conservan su lab_id.
func (uc *LaboratoryUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los laboratorios.
func (uc *LaboratoryUseCase) List(ctx context.Context) ([]dto.LaboratoryResponse, error) {
	labs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LaboratoryResponse, 0, len(labs))
	for _, l := range labs {
		out = append(out, dto.NewLaboratoryResponse(l))
	}
	return out, nil
}

// SetStatus activa o desactiva el laboratorio.
func (uc *LaboratoryUseCase) SetStatus(ctx context.Context, id string, in dto.StatusRequest) (*dto.LabStatusResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	lab, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	lab.Status = in.Status
	lab.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, lab); err != nil {
		return nil, err
	}
	msg := "Laboratorio activado"
	if lab.Status == entity.StatusInactive {
		msg = "Laboratorio desactivado"
	}
	return &dto.LabStatusResponse{ID: lab.ID, Name: lab.Name, Status: lab.Status, Message: msg}, nil
}
