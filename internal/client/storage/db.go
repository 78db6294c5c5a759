package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelichko/petbook/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the client database at dsn, migrates it
// and returns a ready Repository along with the handle for teardown.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, Repository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, NewSQLiteRepository(db), nil
}
