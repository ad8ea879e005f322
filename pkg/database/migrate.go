package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/Alijeyrad/interiora_backend/migrations"
)

// Migrator applies the embedded goose migrations.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(db *DB) *Migrator {
	return &Migrator{db: db.GetConnection()}
}

func (m *Migrator) setup() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Up runs all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	slog.Info("database: running migrations")
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Down rolls back the last migration.
func (m *Migrator) Down(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// Status prints the migration status through goose's logger.
func (m *Migrator) Status(ctx context.Context) error {
	if err := m.setup(); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	if err := m.setup(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("failed to get database version: %w", err)
	}
	return v, nil
}
