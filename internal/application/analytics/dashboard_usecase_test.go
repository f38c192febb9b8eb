package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/architectonquantum-commits/LABDEN/internal/application/analytics"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository/mocks"
)

func strPtr(s string) *string { return &s }

func money(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestSummarize(t *testing.T) {
	orders := []*entity.Order{
		{LabID: "L1", Status: entity.OrderPendiente, Value: money("100.50")},
		{LabID: "L1", Status: entity.OrderTerminada, Value: money("49.50"), Archivado: true},
		{LabID: "L2", Status: entity.OrderPendiente},
		{LabID: "L1", Status: entity.OrderCancelada},
	}
	s := analytics.Summarize(orders, map[string]string{"L1": "Sonrisa"})

	assert.Equal(t, 4, s.TotalOrders)
	assert.Equal(t, 2, s.ByStatus[entity.OrderPendiente])
	assert.Equal(t, 0, s.ByStatus[entity.OrderIniciada])
	assert.Len(t, s.ByStatus, 5)
	assert.Equal(t, 1, s.ArchivedOrders)
	assert.Equal(t, "150", s.Revenue.String())
	require.Len(t, s.Labs, 2)
	assert.Equal(t, "Sonrisa", s.Labs[0].LabName)
	assert.Equal(t, 3, s.Labs[0].Orders)
	assert.Equal(t, "Unknown Lab", s.Labs[1].LabName)
	assert.True(t, s.Labs[1].Revenue.IsZero())
}

func TestSummarize_Vacio(t *testing.T) {
	s := analytics.Summarize(nil, nil)
	assert.Zero(t, s.TotalOrders)
	assert.NotNil(t, s.Labs)
	assert.True(t, s.Revenue.IsZero())
}

func TestGetSummary_DoctorExcluyeArchivadas(t *testing.T) {
	ctx := context.Background()
	orders, labs, users := new(mocks.OrderRepository), new(mocks.LaboratoryRepository), new(mocks.UserRepository)
	notArchived := false
	orders.On("List", mock.Anything, repository.OrderFilter{DoctorID: "docA", Archived: &notArchived}).
		Return([]*entity.Order{{LabID: "L1", Status: entity.OrderEnProceso}}, nil)
	labs.On("NamesByIDs", ctx, []string{"L1"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	s, err := analytics.NewDashboardUseCase(orders, labs, users).GetSummary(ctx, &entity.User{ID: "docA", Role: entity.RoleDoctor, LabID: strPtr("L1")})
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalOrders)
	assert.Nil(t, s.Admin)
	users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetSummary_SuperadminIncluyeConteosGlobales(t *testing.T) {
	ctx := context.Background()
	orders, labs, users := new(mocks.OrderRepository), new(mocks.LaboratoryRepository), new(mocks.UserRepository)
	orders.On("List", mock.Anything, repository.OrderFilter{}).Return([]*entity.Order{{LabID: "L1", Status: entity.OrderPendiente}}, nil)
	labs.On("List", mock.Anything).Return([]*entity.Laboratory{
		{ID: "L1", Name: "Sonrisa", Status: entity.StatusActive},
		{ID: "L2", Name: "Efecto", Status: entity.StatusInactive},
	}, nil)
	users.On("List", mock.Anything, repository.UserFilter{}).Return([]*entity.User{
		{Role: entity.RoleSuperAdmin}, {Role: entity.RoleDoctor}, {Role: entity.RoleDoctor},
	}, nil)

	s, err := analytics.NewDashboardUseCase(orders, labs, users).GetSummary(ctx, &entity.User{ID: "root", Role: entity.RoleSuperAdmin})
	require.NoError(t, err)
	require.NotNil(t, s.Admin)
	assert.Equal(t, 2, s.Admin.TotalLabs)
	assert.Equal(t, 1, s.Admin.ActiveLabs)
	assert.Equal(t, 2, s.Admin.UsersByRole[entity.RoleDoctor])
	assert.Equal(t, 0, s.Admin.UsersByRole[entity.RoleLaboratorio])
	assert.Equal(t, "Sonrisa", s.Labs[0].LabName)
}

func TestGetSummary_LaboratorioSinLabNoConsulta(t *testing.T) {
	orders, labs, users := new(mocks.OrderRepository), new(mocks.LaboratoryRepository), new(mocks.UserRepository)
	caller := &entity.User{ID: "lab9", Role: entity.RoleLaboratorio, Status: entity.StatusActive}

	out, err := analytics.NewDashboardUseCase(orders, labs, users).GetSummary(context.Background(), caller)
	require.NoError(t, err)
	assert.Zero(t, out.TotalOrders)
	assert.Empty(t, out.Labs)
	orders.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	labs.AssertNotCalled(t, "NamesByIDs", mock.Anything, mock.Anything)
}
