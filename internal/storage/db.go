// Package storage opens the local SQLite database, applies migrations and
// bundles the repositories built on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"offstash/internal/migrations"
	"offstash/internal/repositories/attachments"
	"offstash/internal/repositories/syncqueue"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Repositories bundles every repository backed by one database handle.
// All of them see the same writes immediately (read-your-writes within a
// partition follows from sharing the handle).
type Repositories struct {
	Attachments attachments.Repository
	SyncQueue   syncqueue.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the database at dsn, migrates it and
// returns the handle plus the repository bundle. The caller owns closing
// the handle.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from silently splitting per connection.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	repos := &Repositories{
		Attachments: attachments.NewSQLiteRepository(db),
		SyncQueue:   syncqueue.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
