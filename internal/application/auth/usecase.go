package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
	"github.com/architectonquantum-commits/LABDEN/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando el email no existe, para que ambos fallos tarden lo mismo.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("labden-sin-usuario"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// AuthUseCase casos de uso de autenticación: registro, login y resolución del token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	labRepo  repository.LaboratoryRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, labRepo repository.LaboratoryRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, labRepo: labRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario laboratorio o doctor. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
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
			return nil, fmt.Errorf("auth: register: %w", err)
		}
		if lab == nil {
			return nil, fmt.Errorf("%w: laboratorio no existe", domain.ErrInvalidInput)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         in.Role,
		Status:       entity.StatusActive,
		LabID:        labID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// Authenticate valida el token y vuelve a leer el usuario desde DB.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth: authenticate: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
