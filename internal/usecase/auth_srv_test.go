package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/data/repository"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/usecase"
	"laundry-service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService() (*mocks, *MockTokenIssuer, usecase.AuthService) {
	m, repo := newMocks()
	tokens := new(MockTokenIssuer)
	return m, tokens, usecase.NewAuthService(repo, tokens, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	m, tokens, svc := newAuthService()
	expires := time.Now().Add(time.Hour)

	var created *entity.User
	m.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.User) }).
		Return(nil)
	tokens.On("GenerateToken", mock.MatchedBy(func(id utils.Identity) bool {
		return id.Role == "customer" && id.Email == "ana@example.com"
	})).Return("signed-token", expires, nil)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Phone:    "5550100",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, entity.RoleCustomer, resp.Role)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	require.NotNil(t, created)
	assert.NotEqual(t, "secret1", created.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret1", created.PasswordHash))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	m, _, svc := newAuthService()
	m.users.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(newUser(entity.RoleCustomer, "Ana", "ana@example.com"), nil)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana again",
		Email:    "ana@example.com",
		Phone:    "5550100",
		Password: "secret1",
	})
	require.ErrorIs(t, err, usecase.ErrConflict)
	assert.Contains(t, err.Error(), "email already registered")
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_ConcurrentDuplicate(t *testing.T) {
	m, tokens, svc := newAuthService()
	m.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Return(fmt.Errorf("create user ana@example.com: %w", repository.ErrDuplicate))

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Phone:    "5550100",
		Password: "secret1",
	})
	require.ErrorIs(t, err, usecase.ErrConflict)
	assert.Contains(t, err.Error(), "email already registered")
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestAuthService_Register_Validation(t *testing.T) {
	_, _, svc := newAuthService()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "",
		Email:    "not-an-email",
		Phone:    "",
		Password: "123",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("admin123")
	require.NoError(t, err)
	admin := newUser(entity.RoleAdmin, "Administrator", "admin@laundry.com")
	admin.PasswordHash = hash

	t.Run("valid", func(t *testing.T) {
		m, tokens, svc := newAuthService()
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").Return(admin, nil)
		tokens.On("GenerateToken", mock.Anything).Return("tok", time.Now().Add(time.Hour), nil)

		resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: "admin@laundry.com", Password: "admin123"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, resp.Role)
		assert.Equal(t, admin.ID.String(), resp.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		m, tokens, svc := newAuthService()
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").Return(admin, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "admin@laundry.com", Password: "nope"})
		require.ErrorIs(t, err, usecase.ErrUnauthenticated)
		assert.Contains(t, err.Error(), "invalid credentials")
		tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		m, _, svc := newAuthService()
		m.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, usecase.ErrUnauthenticated)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		m, _, svc := newAuthService()
		m.users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

		_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "admin@laundry.com", Password: "admin123"})
		require.Error(t, err)
		assert.False(t, errors.Is(err, usecase.ErrUnauthenticated))
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	req := &request.SeedAdminRequest{
		Name:     "Administrator",
		Email:    "admin@laundry.com",
		Phone:    "0000000000",
		Password: "admin123",
	}

	t.Run("creates admin with hashed password", func(t *testing.T) {
		m, _, svc := newAuthService()
		var created *entity.User
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").Return(nil, nil)
		m.users.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.User) }).
			Return(nil)

		user, changed, err := svc.SeedAdmin(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, entity.RoleAdmin, user.Role)
		require.NotNil(t, created)
		assert.True(t, utils.CheckPasswordHash("admin123", created.PasswordHash))
	})

	t.Run("existing email is left alone", func(t *testing.T) {
		m, _, svc := newAuthService()
		existing := newUser(entity.RoleAdmin, "Administrator", "admin@laundry.com")
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").Return(existing, nil)

		user, changed, err := svc.SeedAdmin(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, existing.ID.String(), user.ID)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reset re-hashes the password", func(t *testing.T) {
		m, _, svc := newAuthService()
		existing := newUser(entity.RoleAdmin, "Administrator", "admin@laundry.com")
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").Return(existing, nil)
		m.users.On("UpdatePassword", mock.Anything, existing.ID, mock.MatchedBy(func(hash string) bool {
			return utils.CheckPasswordHash("n3w-secret", hash)
		})).Return(nil).Once()

		reset := *req
		reset.Password = "n3w-secret"
		reset.ResetPassword = true

		_, changed, err := svc.SeedAdmin(context.Background(), &reset)
		require.NoError(t, err)
		assert.True(t, changed)
		m.users.AssertExpectations(t)
	})

	t.Run("reset refuses a customer account", func(t *testing.T) {
		m, _, svc := newAuthService()
		m.users.On("FindByEmail", mock.Anything, "admin@laundry.com").
			Return(newUser(entity.RoleCustomer, "Imposter", "admin@laundry.com"), nil)

		reset := *req
		reset.ResetPassword = true

		_, _, err := svc.SeedAdmin(context.Background(), &reset)
		assert.ErrorIs(t, err, usecase.ErrConflict)
	})
}
