package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// CreateDatabaseIfNotExists connects to the server's 'postgres' database and
// creates cfg.DBName when it is missing. Run once before migrations.
func CreateDatabaseIfNotExists(ctx context.Context, cfg Config) (created bool, err error) {
	if cfg.DBName == "" {
		return false, fmt.Errorf("no database name provided")
	}

	admin := cfg
	admin.DBName = "postgres"

	conn, err := openSQLDB(admin)
	if err != nil {
		return false, fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer conn.Close()

	return createDatabaseIfNotExists(ctx, conn, cfg.DBName)
}

func createDatabaseIfNotExists(ctx context.Context, conn *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := conn.QueryRowContext(ctx, query, dbName).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if exists {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return false, fmt.Errorf("failed to create database: %w", err)
	}

	return true, nil
}
