package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/architectonquantum-commits/LABDEN/internal/application/dto"
	"github.com/architectonquantum-commits/LABDEN/internal/application/orders"
	"github.com/architectonquantum-commits/LABDEN/internal/domain"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository/mocks"
)

func strPtr(s string) *string { return &s }

type notifierMock struct{ mock.Mock }

func (m *notifierMock) Notify(ctx context.Context, userID, kind, message string) error {
	return m.Called(ctx, userID, kind, message).Error(0)
}

type OrderUseCaseTestSuite struct {
	suite.Suite
	ctx      context.Context
	orders   *mocks.OrderRepository
	users    *mocks.UserRepository
	labs     *mocks.LaboratoryRepository
	notifier *notifierMock
	uc       *orders.OrderUseCase

	doctor *entity.User
	labL1  *entity.User
	labL2  *entity.User
	admin  *entity.User
}

func (s *OrderUseCaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.orders = new(mocks.OrderRepository)
	s.users = new(mocks.UserRepository)
	s.labs = new(mocks.LaboratoryRepository)
	s.notifier = new(notifierMock)
	s.uc = orders.NewOrderUseCase(s.orders, s.users, s.labs, s.notifier, false, zerolog.Nop())

	s.doctor = &entity.User{ID: "docA", Name: "Dr. Ana", Role: entity.RoleDoctor, LabID: strPtr("L1"), Status: entity.StatusActive}
	s.labL1 = &entity.User{ID: "lab1", Name: "Lab Manager", Role: entity.RoleLaboratorio, LabID: strPtr("L1"), Status: entity.StatusActive}
	s.labL2 = &entity.User{ID: "lab2", Name: "Otro Lab", Role: entity.RoleLaboratorio, LabID: strPtr("L2"), Status: entity.StatusActive}
	s.admin = &entity.User{ID: "root", Name: "Admin", Role: entity.RoleSuperAdmin, Status: entity.StatusActive}
}

func TestOrderUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(OrderUseCaseTestSuite))
}

func (s *OrderUseCaseTestSuite) names() {
	s.users.On("NamesByIDs", s.ctx, mock.Anything).Return(map[string]string{"docA": "Dr. Ana"}, nil)
	s.labs.On("NamesByIDs", s.ctx, mock.Anything).Return(map[string]string{"L1": "Sonrisa"}, nil)
}

func (s *OrderUseCaseTestSuite) existing(o *entity.Order) {
	s.orders.On("GetByID", s.ctx, o.ID).Return(o, nil)
}

// ─── Create ──────────────────────────────────────────────────────────────────

func (s *OrderUseCaseTestSuite) TestCreate_DoctorFuerzaDoctorYLab() {
	s.orders.On("Create", s.ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.DoctorIDValue() == "docA" && o.LabID == "L1" &&
			o.Status == entity.OrderPendiente && o.ProgressPercentage == "0" && !o.Archivado
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).OrderNumber = 7
	}).Return(nil)
	s.notifier.On("Notify", s.ctx, "L1", entity.NotificationNewOrder, "Nueva orden #7 de Dr. Ana").Return(nil)
	s.labs.On("NamesByIDs", s.ctx, []string{"L1"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	out, err := s.uc.Create(s.ctx, s.doctor, dto.CreateOrderRequest{
		DoctorID:       strPtr("otro-doctor"),
		NombrePaciente: "Juan Pérez",
		Services:       []string{"corona"},
		Odontograma:    entity.Odontogram{"11": {"corona"}},
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "docA", *out.DoctorID)
	assert.Equal(s.T(), "L1", out.LabID)
	assert.Equal(s.T(), int64(7), out.OrderNumber)
	assert.Equal(s.T(), "Dr. Ana", out.DoctorName)
	assert.Equal(s.T(), "Sonrisa", out.LabName)
	s.notifier.AssertExpectations(s.T())
}

func (s *OrderUseCaseTestSuite) TestCreate_DoctorSinLab() {
	_, err := s.uc.Create(s.ctx, &entity.User{ID: "docX", Role: entity.RoleDoctor}, dto.CreateOrderRequest{})
	assert.ErrorIs(s.T(), err, domain.ErrDoctorWithoutLab)
	s.orders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestCreate_LaboratorioAsignaDoctorDelMismoLab() {
	s.users.On("GetByID", s.ctx, "docA").Return(s.doctor, nil)
	s.orders.On("Create", s.ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.LabID == "L1" && o.DoctorIDValue() == "docA"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).OrderNumber = 3
	}).Return(nil)
	s.notifier.On("Notify", s.ctx, "docA", entity.NotificationOrderAssigned, "Se te asignó la orden #3").Return(nil)
	s.labs.On("NamesByIDs", s.ctx, []string{"L1"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	out, err := s.uc.Create(s.ctx, s.labL1, dto.CreateOrderRequest{DoctorID: strPtr("docA")})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "L1", out.LabID)
	s.notifier.AssertExpectations(s.T())
}

func (s *OrderUseCaseTestSuite) TestCreate_LaboratorioSinDoctorNoNotifica() {
	s.orders.On("Create", s.ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.LabID == "L2" && o.DoctorID == nil
	})).Return(nil)
	s.labs.On("NamesByIDs", s.ctx, []string{"L2"}).Return(map[string]string{}, nil)

	out, err := s.uc.Create(s.ctx, s.labL2, dto.CreateOrderRequest{})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), orders.UnknownLab, out.LabName)
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestCreate_AsignacionCruzadaProhibida() {
	docB := &entity.User{ID: "docB", Role: entity.RoleDoctor, LabID: strPtr("L2")}
	s.users.On("GetByID", s.ctx, "docB").Return(docB, nil)

	_, err := s.uc.Create(s.ctx, s.labL1, dto.CreateOrderRequest{DoctorID: strPtr("docB")})
	assert.ErrorIs(s.T(), err, domain.ErrCrossTenantAssignment)
	s.orders.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestCreate_DoctorAsignadoInvalido() {
	s.users.On("GetByID", s.ctx, "nadie").Return(nil, nil)
	s.users.On("GetByID", s.ctx, "lab2").Return(s.labL2, nil)

	_, err := s.uc.Create(s.ctx, s.labL1, dto.CreateOrderRequest{DoctorID: strPtr("nadie")})
	assert.ErrorIs(s.T(), err, domain.ErrDoctorNotFound)

	_, err = s.uc.Create(s.ctx, s.labL1, dto.CreateOrderRequest{DoctorID: strPtr("lab2")})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidRole)
}

func (s *OrderUseCaseTestSuite) TestCreate_SuperadminProhibido() {
	_, err := s.uc.Create(s.ctx, s.admin, dto.CreateOrderRequest{})
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
}

func (s *OrderUseCaseTestSuite) TestCreate_OdontogramaInvalido() {
	_, err := s.uc.Create(s.ctx, s.doctor, dto.CreateOrderRequest{Odontograma: entity.Odontogram{"19": {"corona"}}})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidOdontogram)
}

func (s *OrderUseCaseTestSuite) TestCreate_FalloDeNotificacionNoRevierte() {
	s.orders.On("Create", s.ctx, mock.Anything).Return(nil)
	s.notifier.On("Notify", s.ctx, "L1", entity.NotificationNewOrder, mock.Anything).Return(errors.New("db down"))
	s.labs.On("NamesByIDs", s.ctx, []string{"L1"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	out, err := s.uc.Create(s.ctx, s.doctor, dto.CreateOrderRequest{})
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), out.ID)
}

// ─── List / Get ──────────────────────────────────────────────────────────────

func (s *OrderUseCaseTestSuite) TestList_ScopePorRol() {
	cases := []struct {
		caller *entity.User
		filter repository.OrderFilter
	}{
		{s.doctor, repository.OrderFilter{DoctorID: "docA"}},
		{s.labL1, repository.OrderFilter{LabID: "L1"}},
		{s.admin, repository.OrderFilter{}},
	}
	s.names()
	for _, c := range cases {
		s.orders.On("List", s.ctx, c.filter).Return([]*entity.Order{}, nil).Once()
		_, err := s.uc.List(s.ctx, c.caller, dto.OrderQuery{})
		require.NoError(s.T(), err)
	}
	s.orders.AssertExpectations(s.T())
}

func (s *OrderUseCaseTestSuite) TestList_LaboratorioSinLabVacio() {
	sinLab := &entity.User{ID: "lab9", Role: entity.RoleLaboratorio, Status: entity.StatusActive}

	out, err := s.uc.List(s.ctx, sinLab, dto.OrderQuery{})
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), out)
	assert.Empty(s.T(), out)
	s.orders.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestList_FiltrosYBusquedaSinAcentos() {
	archived := false
	s.orders.On("List", s.ctx, repository.OrderFilter{DoctorID: "docA", Archived: &archived}).Return([]*entity.Order{
		{ID: "o1", DoctorID: strPtr("docA"), LabID: "L1", NombrePaciente: "Juan Pérez"},
		{ID: "o2", DoctorID: strPtr("docA"), LabID: "L1", NombrePaciente: "María López"},
	}, nil)
	s.names()

	out, err := s.uc.List(s.ctx, s.doctor, dto.OrderQuery{Archived: "false", Q: "PEREZ"})
	require.NoError(s.T(), err)
	require.Len(s.T(), out, 1)
	assert.Equal(s.T(), "o1", out[0].ID)
}

func (s *OrderUseCaseTestSuite) TestList_ReferenciasColgantes() {
	s.orders.On("List", s.ctx, repository.OrderFilter{}).Return([]*entity.Order{
		{ID: "o1", DoctorID: strPtr("borrado"), LabID: "lab-borrado"},
		{ID: "o2", LabID: "L1"},
	}, nil)
	s.users.On("NamesByIDs", s.ctx, []string{"borrado"}).Return(map[string]string{}, nil)
	s.labs.On("NamesByIDs", s.ctx, []string{"lab-borrado", "L1"}).Return(map[string]string{"L1": "Sonrisa"}, nil)

	out, err := s.uc.List(s.ctx, s.admin, dto.OrderQuery{})
	require.NoError(s.T(), err)
	require.Len(s.T(), out, 2)
	assert.Equal(s.T(), orders.UnknownDoctor, out[0].DoctorName)
	assert.Equal(s.T(), orders.UnknownLab, out[0].LabName)
	assert.Equal(s.T(), "Sonrisa", out[1].LabName)
}

func (s *OrderUseCaseTestSuite) TestList_ArchivedInvalido() {
	_, err := s.uc.List(s.ctx, s.doctor, dto.OrderQuery{Archived: "quizas"})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

func (s *OrderUseCaseTestSuite) TestGet_DoctorAjeno() {
	s.existing(&entity.Order{ID: "o1", DoctorID: strPtr("docB"), LabID: "L1"})

	_, err := s.uc.Get(s.ctx, s.doctor, "o1")
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
}

func (s *OrderUseCaseTestSuite) TestGet_NoExiste() {
	s.orders.On("GetByID", s.ctx, "nope").Return(nil, nil)

	_, err := s.uc.Get(s.ctx, s.admin, "nope")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *OrderUseCaseTestSuite) TestListByLab_LabInexistente() {
	s.labs.On("GetByID", s.ctx, "nope").Return(nil, nil)

	_, err := s.uc.ListByLab(s.ctx, "nope")
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

// ─── Update / Archive / Progress ─────────────────────────────────────────────

func (s *OrderUseCaseTestSuite) TestUpdate_CambioDeEstadoNotificaAlDoctor() {
	s.existing(&entity.Order{ID: "o1", OrderNumber: 5, DoctorID: strPtr("docA"), LabID: "L1", Status: entity.OrderPendiente})
	s.orders.On("Update", s.ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Status == entity.OrderIniciada && o.LabID == "L1" && o.DoctorIDValue() == "docA"
	})).Return(nil)
	s.notifier.On("Notify", s.ctx, "docA", entity.NotificationOrderStatusChanged, "Tu orden #5 cambió a iniciada").Return(nil)
	s.names()

	out, err := s.uc.Update(s.ctx, s.labL1, "o1", dto.UpdateOrderRequest{Status: strPtr("iniciada"), Material: strPtr("zirconio")})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "zirconio", out.Material)
	s.notifier.AssertExpectations(s.T())
}

func (s *OrderUseCaseTestSuite) TestUpdate_MismoEstadoNoNotifica() {
	s.existing(&entity.Order{ID: "o1", DoctorID: strPtr("docA"), LabID: "L1", Status: entity.OrderPendiente})
	s.orders.On("Update", s.ctx, mock.Anything).Return(nil)
	s.names()

	_, err := s.uc.Update(s.ctx, s.doctor, "o1", dto.UpdateOrderRequest{Status: strPtr("pendiente")})
	require.NoError(s.T(), err)
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestUpdate_EstadoDesconocido() {
	s.existing(&entity.Order{ID: "o1", LabID: "L1", Status: entity.OrderPendiente})

	_, err := s.uc.Update(s.ctx, s.labL1, "o1", dto.UpdateOrderRequest{Status: strPtr("entregada")})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidStatus)
	s.orders.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestUpdate_ModoEstrictoRechazaTransicion() {
	strict := orders.NewOrderUseCase(s.orders, s.users, s.labs, s.notifier, true, zerolog.Nop())
	s.existing(&entity.Order{ID: "o1", LabID: "L1", Status: entity.OrderTerminada})

	_, err := strict.Update(s.ctx, s.labL1, "o1", dto.UpdateOrderRequest{Status: strPtr("pendiente")})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidTransition)
}

func (s *OrderUseCaseTestSuite) TestUpdate_ModoPermisivoAceptaCualquierEstado() {
	s.existing(&entity.Order{ID: "o1", LabID: "L1", Status: entity.OrderTerminada})
	s.orders.On("Update", s.ctx, mock.Anything).Return(nil)
	s.names()

	out, err := s.uc.Update(s.ctx, s.labL1, "o1", dto.UpdateOrderRequest{Status: strPtr("pendiente")})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "pendiente", out.Status)
}

func (s *OrderUseCaseTestSuite) TestSetArchived_Idempotente() {
	order := &entity.Order{ID: "o1", DoctorID: strPtr("docA"), LabID: "L1", Status: entity.OrderTerminada}
	s.existing(order)
	s.orders.On("Update", s.ctx, mock.Anything).Return(nil).Once()
	s.names()

	out, err := s.uc.SetArchived(s.ctx, s.doctor, "o1", true)
	require.NoError(s.T(), err)
	assert.True(s.T(), out.Archivado)

	out, err = s.uc.SetArchived(s.ctx, s.doctor, "o1", true)
	require.NoError(s.T(), err)
	assert.True(s.T(), out.Archivado)

	s.orders.AssertNumberOfCalls(s.T(), "Update", 1)
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestSetArchived_SuperadminProhibido() {
	s.existing(&entity.Order{ID: "o1", LabID: "L1"})

	_, err := s.uc.SetArchived(s.ctx, s.admin, "o1", true)
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
}

func (s *OrderUseCaseTestSuite) TestUpdateProgress_OtroLabProhibido() {
	order := &entity.Order{ID: "o1", LabID: "L1", Status: entity.OrderPendiente, ProgressPercentage: "0"}
	s.existing(order)

	_, err := s.uc.UpdateProgress(s.ctx, s.labL2, "o1", dto.ProgressRequest{Status: "terminada", Progress: "100"})
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
	assert.Equal(s.T(), entity.OrderPendiente, order.Status)
	assert.Equal(s.T(), "0", order.ProgressPercentage)
	s.orders.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *OrderUseCaseTestSuite) TestUpdateProgress_DoctorProhibido() {
	s.existing(&entity.Order{ID: "o1", DoctorID: strPtr("docA"), LabID: "L1", Status: entity.OrderPendiente})

	_, err := s.uc.UpdateProgress(s.ctx, s.doctor, "o1", dto.ProgressRequest{Progress: "50"})
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
}

func (s *OrderUseCaseTestSuite) TestUpdateProgress_EstadoPorDefecto() {
	s.existing(&entity.Order{ID: "o1", OrderNumber: 9, DoctorID: strPtr("docA"), LabID: "L1", Status: entity.OrderPendiente, ProgressPercentage: "0"})
	s.orders.On("Update", s.ctx, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Status == entity.OrderEnProceso && o.ProgressPercentage == "40"
	})).Return(nil)
	s.notifier.On("Notify", s.ctx, "docA", entity.NotificationOrderStatusChanged, "Tu orden #9 cambió a en_proceso").Return(nil)
	s.names()

	out, err := s.uc.UpdateProgress(s.ctx, s.admin, "o1", dto.ProgressRequest{Progress: "040"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "40", out.ProgressPercentage)
}

func (s *OrderUseCaseTestSuite) TestUpdateProgress_FueraDeRango() {
	_, err := s.uc.UpdateProgress(s.ctx, s.labL1, "o1", dto.ProgressRequest{Progress: "120"})
	assert.ErrorIs(s.T(), err, domain.ErrInvalidInput)
}

// ─── PDF ─────────────────────────────────────────────────────────────────────

type pdfStub struct{ sheet orders.OrderSheet }

func (p *pdfStub) GenerateOrderPDF(_ context.Context, sheet orders.OrderSheet) ([]byte, error) {
	p.sheet = sheet
	return []byte("%PDF-1.4"), nil
}

func (s *OrderUseCaseTestSuite) TestRenderPDF() {
	s.existing(&entity.Order{ID: "o1", OrderNumber: 12, DoctorID: strPtr("docA"), LabID: "L1"})
	s.names()
	gen := &pdfStub{}

	pdf, name, err := orders.NewPDFUseCase(s.uc, gen).Render(s.ctx, s.labL1, "o1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "orden_12.pdf", name)
	assert.Equal(s.T(), []byte("%PDF-1.4"), pdf)
	assert.Equal(s.T(), "Dr. Ana", gen.sheet.DoctorName)
	assert.Equal(s.T(), "Sonrisa", gen.sheet.LabName)
}

func (s *OrderUseCaseTestSuite) TestRenderPDF_SinAcceso() {
	s.existing(&entity.Order{ID: "o1", LabID: "L1"})

	_, _, err := orders.NewPDFUseCase(s.uc, &pdfStub{}).Render(s.ctx, s.labL2, "o1")
	assert.ErrorIs(s.T(), err, domain.ErrForbidden)
}
