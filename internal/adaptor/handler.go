package adaptor

import (
	"laundry-service/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Order        *OrderHandler
	Admin        *AdminHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log.With(zap.String("handler", "auth"))),
		Order:        NewOrderHandler(service.Order, log.With(zap.String("handler", "order"))),
		Admin:        NewAdminHandler(service.Order, log.With(zap.String("handler", "admin"))),
		Notification: NewNotificationHandler(service.Notification, log.With(zap.String("handler", "notification"))),
	}
}
