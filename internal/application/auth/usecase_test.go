package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/architectonquantum-commits/LABDEN/internal/application/auth"
	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository/mocks"
	"github.com/architectonquantum-commits/LABDEN/pkg/jwt"
)

const secret = "test-secret"

func newUseCase() (*auth.AuthUseCase, *mocks.UserRepository, *mocks.LaboratoryRepository) {
	users := new(mocks.UserRepository)
	labs := new(mocks.LaboratoryRepository)
	return auth.NewAuthUseCase(users, labs, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "labden"}), users, labs
}

func hashed(t *testing.T, pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, users, _ := newUseCase()
	ctx := context.Background()
	users.On("GetByEmail", ctx, "ana@dental.com").Return(&entity.User{ID: "u1"}, nil)

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "Ana@dental.com", Password: "secret1", Role: "doctor"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Exitoso(t *testing.T) {
	uc, users, labs := newUseCase()
	ctx := context.Background()
	lab := "L1"
	users.On("GetByEmail", ctx, "ana@dental.com").Return(nil, nil)
	labs.On("GetByID", ctx, "L1").Return(&entity.Laboratory{ID: "L1"}, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleDoctor && u.Status == entity.StatusActive &&
			u.LabIDValue() == "L1" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@dental.com", Password: "secret1", Role: "doctor", LabID: &lab})
	require.NoError(t, err)
	assert.Equal(t, "ana@dental.com", out.Email)
	assert.NotEmpty(t, out.ID)
	users.AssertExpectations(t)
}

func TestRegister_SuperadminNoPermitido(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "X", Email: "x@dental.com", Password: "secret1", Role: "superadmin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	active := &entity.User{ID: "u1", Email: "lab@dental.com", Role: entity.RoleLaboratorio, Status: entity.StatusActive, PasswordHash: hashed(t, "LabManager123!")}
	inactive := &entity.User{ID: "u2", Email: "off@dental.com", Role: entity.RoleDoctor, Status: entity.StatusInactive, PasswordHash: hashed(t, "Doctor123!")}

	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{"credenciales válidas", "lab@dental.com", "LabManager123!", nil},
		{"password incorrecto", "lab@dental.com", "otra", domain.ErrInvalidCredentials},
		{"email desconocido", "nadie@dental.com", "x", domain.ErrInvalidCredentials},
		{"cuenta inactiva", "off@dental.com", "Doctor123!", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, users, _ := newUseCase()
			users.On("GetByEmail", ctx, "lab@dental.com").Return(active, nil).Maybe()
			users.On("GetByEmail", ctx, "off@dental.com").Return(inactive, nil).Maybe()
			users.On("GetByEmail", ctx, "nadie@dental.com").Return(nil, nil).Maybe()

			out, err := uc.Login(ctx, dto.LoginRequest{Email: tt.email, Password: tt.pass})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			uid, err := jwt.Parse(secret, out.Token)
			require.NoError(t, err)
			assert.Equal(t, "u1", uid)
			assert.Equal(t, "laboratorio", out.User.Role)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc, users, _ := newUseCase()
	token, err := jwt.Generate(secret, "u1", "labden", 60)
	require.NoError(t, err)
	orphan, err := jwt.Generate(secret, "gone", "labden", 60)
	require.NoError(t, err)

	users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Status: entity.StatusActive}, nil)
	users.On("GetByID", ctx, "gone").Return(nil, nil)

	u, err := uc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = uc.Authenticate(ctx, orphan)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.Authenticate(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}
