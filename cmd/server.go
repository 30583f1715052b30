package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"laundry-service/internal/data/repository"
	"laundry-service/internal/wire"
	"laundry-service/pkg/database"
	"laundry-service/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if err := config.CheckSecrets(); err != nil {
			logger.Error("Refusing to start", zap.Error(err))
			return err
		}
		if config.JWT.Secret == utils.DefaultJWTSecret {
			logger.Warn("Signing tokens with the development JWT secret")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		db, err := openDatabase(ctx, config, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if serveMigrate {
			if err := database.Migrate(ctx, db, logger); err != nil {
				return err
			}
		}

		repos := repository.NewRepository(db, logger)

		app, err := wire.Wiring(repos, config, logger)
		if err != nil {
			return err
		}

		return APIServer(ctx, app.Router, config.App.Port, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "apply pending migrations before serving")
}

// APIServer serves handler on port until ctx is done, then drains in-flight
// requests.
func APIServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%s", port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
