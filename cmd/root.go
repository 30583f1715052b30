// Package cmd holds the laundry command line: the API server, database
// maintenance and the client application.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"laundry-service/pkg/database"
	"laundry-service/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "laundry",
	Short:         "Laundry ordering service",
	Long:          "Run the laundry ordering API, manage its database, or use it as a customer or admin.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(clientCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads config and the logger the same way for every server side
// command. A logger that cannot open its file falls back to zap's production
// logger.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}

func openDatabase(ctx context.Context, config *utils.Config, logger *zap.Logger) (*database.DB, error) {
	db, err := database.Connect(ctx, database.DSN(config.Database), config.Database.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("host", config.Database.Host),
		zap.String("name", config.Database.Name))
	return db, nil
}
