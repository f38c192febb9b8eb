package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo    repository.UserRepository
	labRepo repository.LaboratoryRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, labRepo repository.LaboratoryRepository) *UserUseCase {
	return &UserUseCase{repo: repo, labRepo: labRepo}
}

// Me devuelve el perfil del usuario autenticado con el nombre de su laboratorio.
func (uc *UserUseCase) Me(ctx context.Context, caller *entity.User) (*dto.UserResponse, error) {
	out := dto.NewUserResponse(caller)
	if caller.LabID != nil {
		lab, err := uc.labRepo.GetByID(ctx, *caller.LabID)
		if err != nil {
			return nil, err
		}
		if lab != nil {
			out.LabName = &lab.Name
		}
	}
	return &out, nil
}

// UpdateMe actualiza nombre, teléfono o password del propio usuario.
func (uc *UserUseCase) UpdateMe(ctx context.Context, caller *entity.User, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		user.Phone = in.Phone
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("users: update me: %w", err)
	}
	return uc.Me(ctx, user)
}

// List lista todos los usuarios con lab_name.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	return uc.list(ctx, repository.UserFilter{})
}

// ListByLab lista los usuarios de un laboratorio.
func (uc *UserUseCase) ListByLab(ctx context.Context, labID string) ([]dto.UserResponse, error) {
	lab, err := uc.labRepo.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, domain.ErrNotFound
	}
	return uc.list(ctx, repository.UserFilter{LabID: labID})
}

func (uc *UserUseCase) list(ctx context.Context, f repository.UserFilter) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return withLabNames(ctx, uc.labRepo, users)
}

// withLabNames mapea usuarios resolviendo lab_name en una sola consulta.
func withLabNames(ctx context.Context, labs repository.LaboratoryRepository, users []*entity.User) ([]dto.UserResponse, error) {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		if u.LabID != nil {
			ids = append(ids, *u.LabID)
		}
	}
	names, err := labs.NamesByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		r := dto.NewUserResponse(u)
		if name, ok := names[u.LabIDValue()]; ok {
			r.LabName = &name
		}
		out = append(out, r)
	}
	return out, nil
}

func dedupe(ids []string) []string {
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

// Create alta de usuario de cualquier rol (superadmin).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	labID := in.LabID
	if labID != nil && *labID == "" {
		labID = nil
	}
	if labID != nil {
		lab, err := uc.labRepo.GetByID(ctx, *labID)
		if err != nil {
			return nil, err
		}
		if lab == nil {
			return nil, fmt.Errorf("%w: laboratorio no existe", domain.ErrInvalidInput)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         in.Role,
		Status:       status,
		LabID:        labID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// SetStatus activa o desactiva un usuario.
func (uc *UserUseCase) SetStatus(ctx context.Context, id string, in dto.StatusRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.Status = in.Status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}
