package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/data/repository"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
	"laundry-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs a bearer credential for a resolved identity.
type TokenIssuer interface {
	GenerateToken(identity utils.Identity) (string, time.Time, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	SeedAdmin(ctx context.Context, req *request.SeedAdminRequest) (*response.UserResponse, bool, error)
}

type authService struct {
	repo   *repository.Repository
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return s.issue(user)
}

// SeedAdmin creates the admin account if its email is free. An existing
// account is left alone unless ResetPassword is set, in which case only its
// password is re-hashed. The bool result reports whether anything changed.
func (s *authService) SeedAdmin(ctx context.Context, req *request.SeedAdminRequest) (*response.UserResponse, bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, false, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("check admin email: %w", err)
	}

	if existing != nil {
		if !req.ResetPassword {
			s.log.Info("Admin already exists", zap.String("email", email))
			resp := response.UserToResponse(existing)
			return &resp, false, nil
		}
		if !existing.IsAdmin() {
			return nil, false, fmt.Errorf("%w: %s belongs to a non-admin account", ErrConflict, email)
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		if err := s.repo.User.UpdatePassword(ctx, existing.ID, hashedPassword); err != nil {
			return nil, false, fmt.Errorf("reset admin password: %w", err)
		}

		s.log.Info("Admin password reset", zap.String("user_id", existing.ID.String()))
		resp := response.UserToResponse(existing)
		return &resp, true, nil
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         entity.RoleAdmin,
	}

	if err := s.repo.User.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, fmt.Errorf("%w: %s already registered", ErrConflict, email)
		}
		return nil, false, fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin created",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email))

	resp := response.UserToResponse(admin)
	return &resp, true, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(utils.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return response.AuthToResponse(user, token, expiresAt), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
