package usecase_test

import (
	"context"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/data/repository"
	"laundry-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*entity.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*entity.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, id, from, to)
	order, _ := args.Get(0).(*entity.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (*entity.OrderStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*entity.OrderStats)
	return stats, args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []*entity.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*entity.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	items, _ := args.Get(0).([]*entity.Notification)
	return items, args.Error(1)
}

func (m *MockNotificationRepository) CountByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int64, error) {
	args := m.Called(ctx, userID, unreadOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*entity.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) GenerateToken(identity utils.Identity) (string, time.Time, error) {
	args := m.Called(identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type mocks struct {
	users         *MockUserRepository
	orders        *MockOrderRepository
	notifications *MockNotificationRepository
}

func newMocks() (*mocks, *repository.Repository) {
	m := &mocks{
		users:         new(MockUserRepository),
		orders:        new(MockOrderRepository),
		notifications: new(MockNotificationRepository),
	}
	return m, &repository.Repository{
		User:         m.users,
		Order:        m.orders,
		Notification: m.notifications,
	}
}

func newUser(role entity.UserRole, name, email string) *entity.User {
	now := time.Now()
	return &entity.User{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:  name,
		Email: email,
		Phone: "5550100",
		Role:  role,
	}
}

func identityOf(u *entity.User) utils.Identity {
	return utils.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}
