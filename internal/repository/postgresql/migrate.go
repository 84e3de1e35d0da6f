package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// schemaLockKey serialises concurrent migrations when several instances start at once.
const schemaLockKey = 7_240_113

// Migrate applies the embedded schema. Safe to call on every start.
func Migrate(ctx context.Context, db *database.DB) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", schemaLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		if _, err := conn.Exec(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock($1)", schemaLockKey); err != nil {
			slog.Error("Failed to release migration lock", "error", err)
		}
	}()

	// Exec without arguments uses the simple protocol, which accepts multiple statements.
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	slog.Info("Database schema is up to date")
	return nil
}
