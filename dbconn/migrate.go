package dbconn

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every pending schema migration to db.
func Migrate(ctx context.Context, db *bun.DB) (int, error) {
	var gooseDialect goose.Dialect
	switch db.Dialect().Name() {
	case dialect.PG:
		gooseDialect = goose.DialectPostgres
	case dialect.SQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return 0, fmt.Errorf("migrate: unsupported dialect %s", db.Dialect().Name())
	}

	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, fsys)
	if err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migrate: %w", err)
	}
	return len(results), nil
}
