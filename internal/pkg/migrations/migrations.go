package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"dispatch/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedded embed.FS

type Migrator struct {
	log      logger.Logger
	provider *goose.Provider
	closeDB  func() error
}

// New открывает database/sql поверх пула, goose работает только через него.
func New(log logger.Logger, pool *pgxpool.Pool) (*Migrator, error) {
	sqlFS, err := fs.Sub(embedded, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrations fs: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, sqlFS)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("goose provider: %w", err)
	}

	return &Migrator{
		log: log.With(
			logger.NewField("component", "migrations"),
		),
		provider: provider,
		closeDB:  db.Close,
	}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, r := range results {
		m.log.Info("migration applied",
			logger.NewField("version", r.Source.Version),
			logger.NewField("path", r.Source.Path),
			logger.NewField("duration", r.Duration.String()),
		)
	}
	if len(results) == 0 {
		m.log.Info("schema is up to date")
	}
	return nil
}

type Status struct {
	Version int64
	Path    string
	Applied bool
}

func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrations status: %w", err)
	}

	result := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, Status{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return result, nil
}

func (m *Migrator) Close() error {
	return m.closeDB()
}
