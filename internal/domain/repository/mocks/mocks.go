// Package mocks contiene dobles de prueba (testify/mock) para los puertos de repository.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.LaboratoryRepository   = (*LaboratoryRepository)(nil)
	_ repository.OrderRepository        = (*OrderRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
)

func userOrNil(v interface{}) *entity.User {
	u, _ := v.(*entity.User)
	return u
}

func labOrNil(v interface{}) *entity.Laboratory {
	l, _ := v.(*entity.Laboratory)
	return l
}

func orderOrNil(v interface{}) *entity.Order {
	o, _ := v.(*entity.Order)
	return o
}

func names(v interface{}) map[string]string {
	m, _ := v.(map[string]string)
	return m
}

// ─── UserRepository ──────────────────────────────────────────────────────────

type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *UserRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	return names(args.Get(0)), args.Error(1)
}

// ─── LaboratoryRepository ────────────────────────────────────────────────────

type LaboratoryRepository struct{ mock.Mock }

func (m *LaboratoryRepository) Create(ctx context.Context, lab *entity.Laboratory) error {
	return m.Called(ctx, lab).Error(0)
}

func (m *LaboratoryRepository) GetByID(ctx context.Context, id string) (*entity.Laboratory, error) {
	args := m.Called(ctx, id)
	return labOrNil(args.Get(0)), args.Error(1)
}

func (m *LaboratoryRepository) GetByName(ctx context.Context, name string) (*entity.Laboratory, error) {
	args := m.Called(ctx, name)
	return labOrNil(args.Get(0)), args.Error(1)
}

func (m *LaboratoryRepository) Update(ctx context.Context, lab *entity.Laboratory) error {
	return m.Called(ctx, lab).Error(0)
}

func (m *LaboratoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *LaboratoryRepository) List(ctx context.Context) ([]*entity.Laboratory, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Laboratory)
	return list, args.Error(1)
}

func (m *LaboratoryRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	return names(args.Get(0)), args.Error(1)
}

// ─── OrderRepository ─────────────────────────────────────────────────────────

type OrderRepository struct{ mock.Mock }

func (m *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]*entity.Order)
	return list, args.Error(1)
}

func (m *OrderRepository) CountByDoctor(ctx context.Context, doctorID string) (int, error) {
	args := m.Called(ctx, doctorID)
	return args.Int(0), args.Error(1)
}

// ─── NotificationRepository ──────────────────────────────────────────────────

type NotificationRepository struct{ mock.Mock }

func (m *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) ListByRecipients(ctx context.Context, recipients []string) ([]*entity.Notification, error) {
	args := m.Called(ctx, recipients)
	list, _ := args.Get(0).([]*entity.Notification)
	return list, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id string, recipients []string) (bool, error) {
	args := m.Called(ctx, id, recipients)
	return args.Bool(0), args.Error(1)
}
