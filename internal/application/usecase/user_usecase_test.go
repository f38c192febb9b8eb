package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository/mocks"
)

func TestMe_IncluyeLabName(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	ctx := context.Background()
	labs.On("GetByID", ctx, "L1").Return(&entity.Laboratory{ID: "L1", Name: "Efecto Dental"}, nil)

	out, err := usecase.NewUserUseCase(users, labs).Me(ctx, &entity.User{ID: "u1", LabID: strPtr("L1")})
	require.NoError(t, err)
	require.NotNil(t, out.LabName)
	assert.Equal(t, "Efecto Dental", *out.LabName)
}

func TestMe_LabBorradoSinNombre(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	ctx := context.Background()
	labs.On("GetByID", ctx, "gone").Return(nil, nil)

	out, err := usecase.NewUserUseCase(users, labs).Me(ctx, &entity.User{ID: "u1", LabID: strPtr("gone")})
	require.NoError(t, err)
	assert.Nil(t, out.LabName)
}

func TestUpdateMe_CambiaPassword(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	ctx := context.Background()
	users.On("GetByID", ctx, "u1").Return(&entity.User{ID: "u1", Name: "Viejo", PasswordHash: "x"}, nil)
	users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Name == "Nuevo" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva123")) == nil
	})).Return(nil)

	out, err := usecase.NewUserUseCase(users, labs).UpdateMe(ctx, &entity.User{ID: "u1"}, dto.UpdateProfileRequest{
		Name: strPtr("Nuevo"), Password: strPtr("nueva123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)
	users.AssertExpectations(t)
}

func TestList_ResuelveNombresDeLab(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	ctx := context.Background()
	users.On("List", ctx, repository.UserFilter{}).Return([]*entity.User{
		{ID: "root", Role: entity.RoleSuperAdmin},
		{ID: "u1", Role: entity.RoleLaboratorio, LabID: strPtr("L1")},
		{ID: "u2", Role: entity.RoleDoctor, LabID: strPtr("L1")},
		{ID: "u3", Role: entity.RoleDoctor, LabID: strPtr("gone")},
	}, nil)
	labs.On("NamesByIDs", ctx, []string{"L1", "gone"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	out, err := usecase.NewUserUseCase(users, labs).List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Nil(t, out[0].LabName)
	assert.Equal(t, "Sonrisa", *out[1].LabName)
	assert.Nil(t, out[3].LabName)
}

func TestCreateUser_SuperadminConLabInvalido(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	_, err := usecase.NewUserUseCase(users, labs).Create(context.Background(), dto.CreateUserRequest{
		Name: "Root", Email: "root@dental.com", Password: "secret1", Role: "superadmin", LabID: strPtr("L1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStatus_UsuarioInexistente(t *testing.T) {
	users, labs := new(mocks.UserRepository), new(mocks.LaboratoryRepository)
	ctx := context.Background()
	users.On("GetByID", ctx, "nope").Return(nil, nil)

	_, err := usecase.NewUserUseCase(users, labs).SetStatus(ctx, "nope", dto.StatusRequest{Status: "inactive"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
