package wire

import (
	"laundry-service/internal/adaptor"
	"laundry-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	tokens middleware.TokenValidator,
	log *zap.Logger,
) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		r.Post("/", orderHandler.Create)
		r.Get("/", orderHandler.ListMine)
		r.Get("/{id}", orderHandler.GetByID)
	})
}
