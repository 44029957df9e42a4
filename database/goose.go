package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate runs a goose command ("up", "down" or "status") against db with the
// migrations found in dir of migrations.
func Migrate(ctx context.Context, db *sql.DB, migrations fs.FS, dir string, command string) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	// Set the database dialect
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		slog.InfoContext(ctx, "applied migrations", "dir", dir)
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to revert migration: %w", err)
		}
		slog.InfoContext(ctx, "reverted migration", "dir", dir)
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
	return nil
}
