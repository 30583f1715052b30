package repository_test

import (
	"context"
	"testing"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/data/repository"
	"laundry-service/pkg/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RepositoryIntegrationTestSuite struct {
	suite.Suite
	pg   *dbtest.Postgres
	repo *repository.Repository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := dbtest.Start(context.Background())
	s.Require().NoError(err)
	s.pg = pg
	s.repo = repository.NewRepository(pg.DB, zap.NewNop())
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Reset(context.Background()))
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	if s.pg != nil {
		s.Require().NoError(s.pg.Stop(context.Background()))
	}
}

func (s *RepositoryIntegrationTestSuite) newUser(role entity.UserRole, email string) *entity.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "User " + email,
		Email:        email,
		Phone:        "5550100",
		PasswordHash: "$2a$10$hash",
		Role:         role,
	}
	s.Require().NoError(s.repo.User.Create(context.Background(), user))
	return user
}

func (s *RepositoryIntegrationTestSuite) newOrder(owner *entity.User, status entity.OrderStatus, createdAt time.Time) *entity.Order {
	order := &entity.Order{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
		UserID:       owner.ID,
		UserName:     owner.Name,
		UserEmail:    owner.Email,
		ServiceType:  entity.ServiceHeavyWash,
		Quantity:     3,
		PricePerItem: 8,
		TotalPrice:   24,
		Status:       status,
	}
	s.Require().NoError(s.repo.Order.Create(context.Background(), order))
	return order
}

func (s *RepositoryIntegrationTestSuite) TestUser_CreateAndFind() {
	ctx := context.Background()
	user := s.newUser(entity.RoleCustomer, "ana@example.com")

	byEmail, err := s.repo.User.FindByEmail(ctx, "ana@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Equal(user.ID, byEmail.ID)
	s.Equal(entity.RoleCustomer, byEmail.Role)

	missing, err := s.repo.User.FindByID(ctx, uuid.New())
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositoryIntegrationTestSuite) TestUser_DuplicateEmailRejected() {
	s.newUser(entity.RoleCustomer, "dup@example.com")

	now := time.Now()
	err := s.repo.User.Create(context.Background(), &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Dup",
		Email:        "dup@example.com",
		Phone:        "1",
		PasswordHash: "x",
		Role:         entity.RoleCustomer,
	})
	s.ErrorIs(err, repository.ErrDuplicate)
}

func (s *RepositoryIntegrationTestSuite) TestUser_FindByRoleAndUpdatePassword() {
	ctx := context.Background()
	s.newUser(entity.RoleCustomer, "ana@example.com")
	a1 := s.newUser(entity.RoleAdmin, "a1@laundry.com")
	s.newUser(entity.RoleAdmin, "a2@laundry.com")

	admins, err := s.repo.User.FindByRole(ctx, entity.RoleAdmin)
	s.Require().NoError(err)
	s.Len(admins, 2)

	s.Require().NoError(s.repo.User.UpdatePassword(ctx, a1.ID, "new-hash"))
	got, err := s.repo.User.FindByID(ctx, a1.ID)
	s.Require().NoError(err)
	s.Equal("new-hash", got.PasswordHash)

	s.Error(s.repo.User.UpdatePassword(ctx, uuid.New(), "x"))
}

func (s *RepositoryIntegrationTestSuite) TestOrder_ListsNewestFirst() {
	ctx := context.Background()
	ana := s.newUser(entity.RoleCustomer, "ana@example.com")
	bob := s.newUser(entity.RoleCustomer, "bob@example.com")

	base := time.Now().UTC().Truncate(time.Microsecond)
	older := s.newOrder(ana, entity.OrderStatusPending, base.Add(-time.Hour))
	newer := s.newOrder(ana, entity.OrderStatusWashing, base)
	s.newOrder(bob, entity.OrderStatusPending, base.Add(-30*time.Minute))

	mine, err := s.repo.Order.FindByUserID(ctx, ana.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal(newer.ID, mine[0].ID)
	s.Equal(older.ID, mine[1].ID)
	s.Equal(float64(24), mine[0].TotalPrice)

	all, err := s.repo.Order.FindAll(ctx, nil)
	s.Require().NoError(err)
	s.Len(all, 3)

	pending := entity.OrderStatusPending
	filtered, err := s.repo.Order.FindAll(ctx, &pending)
	s.Require().NoError(err)
	s.Len(filtered, 2)
	for _, o := range filtered {
		s.Equal(entity.OrderStatusPending, o.Status)
	}
}

func (s *RepositoryIntegrationTestSuite) TestOrder_UpdateStatusAndStats() {
	ctx := context.Background()
	ana := s.newUser(entity.RoleCustomer, "ana@example.com")
	now := time.Now().UTC()

	o1 := s.newOrder(ana, entity.OrderStatusPending, now)
	s.newOrder(ana, entity.OrderStatusPending, now)
	s.newOrder(ana, entity.OrderStatusCompleted, now)

	updated, err := s.repo.Order.UpdateStatus(ctx, o1.ID, entity.OrderStatusPending, entity.OrderStatusWashing)
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal(entity.OrderStatusWashing, updated.Status)
	s.Equal(o1.UserName, updated.UserName)

	missing, err := s.repo.Order.UpdateStatus(ctx, uuid.New(), entity.OrderStatusPending, entity.OrderStatusWashing)
	s.Require().NoError(err)
	s.Nil(missing)

	stats, err := s.repo.Order.CountByStatus(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), stats.Total)
	s.Equal(int64(1), stats.Pending)
	s.Equal(int64(1), stats.Washing)
	s.Equal(int64(1), stats.Completed)
}

func (s *RepositoryIntegrationTestSuite) TestOrder_UpdateStatusRequiresExpectedStatus() {
	ctx := context.Background()
	ana := s.newUser(entity.RoleCustomer, "ana@example.com")
	order := s.newOrder(ana, entity.OrderStatusPending, time.Now().UTC())

	// Both admins saw Pending; the one completing the order writes first.
	completed, err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCompleted)
	s.Require().NoError(err)
	s.Require().NotNil(completed)

	stale, err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusWashing)
	s.Require().NoError(err)
	s.Nil(stale)

	current, err := s.repo.Order.FindByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(entity.OrderStatusCompleted, current.Status)
}

func (s *RepositoryIntegrationTestSuite) TestNotification_BatchListAndRead() {
	ctx := context.Background()
	ana := s.newUser(entity.RoleCustomer, "ana@example.com")
	a1 := s.newUser(entity.RoleAdmin, "a1@laundry.com")
	a2 := s.newUser(entity.RoleAdmin, "a2@laundry.com")
	order := s.newOrder(ana, entity.OrderStatusPending, time.Now().UTC())

	base := time.Now().UTC().Truncate(time.Microsecond)
	var batch []*entity.Notification
	for i, admin := range []*entity.User{a1, a1, a1, a2} {
		orderID := order.ID
		created := base.Add(time.Duration(i) * time.Second)
		batch = append(batch, &entity.Notification{
			Base:    entity.Base{ID: uuid.New(), CreatedAt: created, UpdatedAt: created},
			UserID:  admin.ID,
			OrderID: &orderID,
			Type:    entity.NotificationOrderCreated,
			Title:   "New order received",
			Message: "Order placed",
			Data:    map[string]any{"orderId": order.ID.String(), "quantity": 3},
		})
	}
	s.Require().NoError(s.repo.Notification.CreateBatch(ctx, batch))

	page, err := s.repo.Notification.FindByUser(ctx, a1.ID, false, 2, 0)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(batch[2].ID, page[0].ID)
	s.Equal(order.ID.String(), page[0].Data["orderId"])
	s.Equal(float64(3), page[0].Data["quantity"])

	total, err := s.repo.Notification.CountByUser(ctx, a1.ID, false)
	s.Require().NoError(err)
	s.Equal(int64(3), total)

	read, err := s.repo.Notification.MarkRead(ctx, batch[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(read)
	s.True(read.IsRead)
	s.Require().NotNil(read.ReadAt)

	again, err := s.repo.Notification.MarkRead(ctx, batch[0].ID)
	s.Require().NoError(err)
	s.True(again.ReadAt.Equal(*read.ReadAt))

	unread, err := s.repo.Notification.CountByUser(ctx, a1.ID, true)
	s.Require().NoError(err)
	s.Equal(int64(2), unread)

	unreadPage, err := s.repo.Notification.FindByUser(ctx, a1.ID, true, 50, 0)
	s.Require().NoError(err)
	s.Len(unreadPage, 2)

	updated, err := s.repo.Notification.MarkAllRead(ctx, a1.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), updated)

	updated, err = s.repo.Notification.MarkAllRead(ctx, a1.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), updated)

	first, err := s.repo.Notification.FindByID(ctx, batch[0].ID)
	s.Require().NoError(err)
	s.Require().NotNil(first.ReadAt)
	s.True(first.ReadAt.Equal(*read.ReadAt))

	otherUnread, err := s.repo.Notification.CountByUser(ctx, a2.ID, true)
	s.Require().NoError(err)
	s.Equal(int64(1), otherUnread)

	missing, err := s.repo.Notification.FindByID(ctx, uuid.New())
	s.Require().NoError(err)
	s.Nil(missing)
}

func TestRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
