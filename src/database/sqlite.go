package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fittrack/migrations"

	_ "modernc.org/sqlite"
)

// SetupLocalDB opens the on-device SQLite store at path and applies the
// local migrations. ":memory:" opens a private in-memory database.
func SetupLocalDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if path == ":memory:" || path == "" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := migrations.SQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
