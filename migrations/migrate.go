// Package migrations embeds and applies the goose schema migrations for the
// remote Postgres store and the local SQLite store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Postgres applies the remote store migrations.
func Postgres(ctx context.Context, db *sql.DB) (int, error) {
	return up(ctx, db, goose.DialectPostgres, "postgres")
}

// SQLite applies the local store migrations.
func SQLite(ctx context.Context, db *sql.DB) (int, error) {
	return up(ctx, db, goose.DialectSQLite3, "sqlite")
}

func up(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) (int, error) {
	sub, err := fs.Sub(FS, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to access %s migrations: %w", dir, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to apply %s migrations: %w", dir, err)
	}
	return len(results), nil
}
