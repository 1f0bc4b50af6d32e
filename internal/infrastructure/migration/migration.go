package migration

import (
	"context"

	"resume-builder/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

type migration struct {
	name string
	up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations brings the documents schema up to date on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	migrations := []migration{
		{name: "create_documents_table", up: createDocumentsTable},
		{name: "add_updated_at_index", up: addUpdatedAtIndex},
	}

	for _, m := range migrations {
		if err := m.up(ctx, pool); err != nil {
			log.Error("migration failed", err, zap.String("name", m.name))
			return err
		}
		log.Info("migration applied", zap.String("name", m.name))
	}
	return nil
}

func createDocumentsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			data JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func addUpdatedAtIndex(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE INDEX IF NOT EXISTS documents_updated_at_idx ON documents (updated_at);`
	_, err := pool.Exec(ctx, query)
	return err
}
