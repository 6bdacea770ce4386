// Package dbmigrate applies embedded SQL migrations at startup.
//
// Migrations are managed with goose over a database/sql connection opened
// through the pgx stdlib driver. The schema is owned by this package; no other
// component issues DDL.
package dbmigrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Run applies all pending migrations against the database at dsn.
func Run(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("dbmigrate: open: %w", err)
	}
	defer func() {
		//nolint:errcheck // connection is only used for migrations
		db.Close()
	}()

	return RunWithDB(ctx, db)
}

// RunWithDB applies all pending migrations using an existing connection.
func RunWithDB(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("dbmigrate: set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("dbmigrate: up: %w", err)
	}

	return nil
}
