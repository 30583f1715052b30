package wire

import (
	"laundry-service/internal/adaptor"
	"laundry-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	notificationHandler *adaptor.NotificationHandler,
	tokens middleware.TokenValidator,
	log *zap.Logger,
) {
	r.Route("/admin", func(r chi.Router) {
		// Authentication AND admin role
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.AdminOnly(log))

		r.Get("/orders", adminHandler.ListOrders)
		r.Put("/orders/{id}", adminHandler.UpdateOrderStatus)
		r.Get("/stats", adminHandler.Stats)

		r.Get("/notifications", notificationHandler.List)
		r.Get("/notifications/unread-count", notificationHandler.UnreadCount)
		r.Put("/notifications/read-all", notificationHandler.MarkAllRead)
		r.Put("/notifications/{id}/read", notificationHandler.MarkRead)
	})
}
