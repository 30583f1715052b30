package usecase

import (
	"context"
	"fmt"

	"laundry-service/internal/data/repository"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/dto/response"
	"laundry-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

// NotificationService only ever touches rows owned by the calling admin.
type NotificationService interface {
	List(ctx context.Context, caller utils.Identity, req request.NotificationListRequest) (*response.NotificationListResponse, error)
	UnreadCount(ctx context.Context, caller utils.Identity) (*response.UnreadCountResponse, error)
	MarkRead(ctx context.Context, caller utils.Identity, notificationID string) (*response.NotificationResponse, error)
	MarkAllRead(ctx context.Context, caller utils.Identity) (*response.MarkAllReadResponse, error)
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) List(ctx context.Context, caller utils.Identity, req request.NotificationListRequest) (*response.NotificationListResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	limit := utils.ClampLimit(req.Limit, DefaultNotificationLimit, MaxNotificationLimit)
	offset := utils.ClampOffset(req.Offset)

	items, err := s.repo.Notification.FindByUser(ctx, caller.UserID, req.UnreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.Notification.CountByUser(ctx, caller.UserID, req.UnreadOnly)
	if err != nil {
		return nil, fmt.Errorf("count notifications: %w", err)
	}

	return response.NotificationsToResponse(items, total, limit, offset), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, caller utils.Identity) (*response.UnreadCountResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	unread, err := s.repo.Notification.CountByUser(ctx, caller.UserID, true)
	if err != nil {
		return nil, fmt.Errorf("count unread notifications: %w", err)
	}
	return &response.UnreadCountResponse{Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, caller utils.Identity, notificationID string) (*response.NotificationResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	id, err := uuid.Parse(notificationID)
	if err != nil {
		return nil, fmt.Errorf("%w: notification not found", ErrNotFound)
	}

	n, err := s.repo.Notification.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: notification not found", ErrNotFound)
	}

	if n.UserID != caller.UserID {
		s.log.Warn("Notification accessed by another admin",
			zap.String("notification_id", n.ID.String()),
			zap.String("admin_id", caller.UserID.String()))
		return nil, ErrForbidden
	}

	if n.IsRead {
		resp := response.NotificationToResponse(n)
		return &resp, nil
	}

	updated, err := s.repo.Notification.MarkRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: notification not found", ErrNotFound)
	}

	resp := response.NotificationToResponse(updated)
	return &resp, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, caller utils.Identity) (*response.MarkAllReadResponse, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	updated, err := s.repo.Notification.MarkAllRead(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("mark all notifications read: %w", err)
	}

	s.log.Info("Notifications marked read",
		zap.String("admin_id", caller.UserID.String()),
		zap.Int64("updated", updated))

	return &response.MarkAllReadResponse{Updated: updated}, nil
}
