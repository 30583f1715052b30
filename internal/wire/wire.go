package wire

import (
	"fmt"
	"net/http"

	"laundry-service/internal/adaptor"
	"laundry-service/internal/data/repository"
	"laundry-service/internal/usecase"
	"laundry-service/pkg/auth"
	"laundry-service/pkg/metrics"
	"laundry-service/pkg/middleware"
	"laundry-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router plus the pieces commands need outside HTTP.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Metrics *metrics.Metrics
}

// Wiring builds services, handlers and routes from the repositories.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	rates, err := usecase.NewRateTable(config.Pricing)
	if err != nil {
		return nil, fmt.Errorf("build rate table: %w", err)
	}

	tokens := auth.NewJWTService(config.JWT)
	m := metrics.New()

	service := usecase.NewService(repo, tokens, rates, m, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, tokens, m, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Metrics: m,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	tokens middleware.TokenValidator,
	m *metrics.Metrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(middleware.CORSOptionsFrom(config.App.CORSOrigins)))
	r.Use(m.Middleware())

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth)
		wireOrder(r, handler.Order, tokens, logger)
		wireAdmin(r, handler.Admin, handler.Notification, tokens, logger)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
