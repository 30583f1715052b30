// Package dbtest starts a throwaway PostgreSQL container with the schema
// applied, for integration tests.
package dbtest

import (
	"context"
	"time"

	"laundry-service/pkg/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type Postgres struct {
	Container *postgres.PostgresContainer
	DB        *database.DB
}

// Start runs postgres:16-alpine, connects a pool and applies migrations.
func Start(ctx context.Context) (*Postgres, error) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("laundry_test"),
		postgres.WithUsername("laundry"),
		postgres.WithPassword("laundry"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := database.Connect(ctx, connStr, 5)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := database.Migrate(ctx, db, zap.NewNop()); err != nil {
		db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Postgres{Container: container, DB: db}, nil
}

// Reset empties every table, children first.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.DB.Exec(ctx, `TRUNCATE TABLE notifications, orders, users`)
	return err
}

func (p *Postgres) Stop(ctx context.Context) error {
	p.DB.Close()
	return p.Container.Terminate(ctx)
}
