package usecase

import (
	"laundry-service/internal/data/repository"
	"laundry-service/pkg/metrics"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Order        OrderService
	Notification NotificationService
}

func NewService(repo *repository.Repository, tokens TokenIssuer, rates RateTable, m *metrics.Metrics, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, tokens, log),
		Order:        NewOrderService(repo, rates, m, log),
		Notification: NewNotificationService(repo, log),
	}
}
