package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iamasit07/connect4-classic/internal/repository/postgres/migrations"
)

// RunMigrations executes the embedded schema.sql. Every statement in it is
// idempotent so this runs on each start.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	content, err := migrations.FS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read embedded schema.sql: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema.sql: %w", err)
	}
	return nil
}
