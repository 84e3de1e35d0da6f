package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userLocker struct {
	db *database.DB
}

// NewUserLocker serialises work per user with a transaction-scoped advisory lock.
// The lock is released when the transaction commits or rolls back.
func NewUserLocker(db *database.DB) attendance.UserLocker {
	return &userLocker{db: db}
}

// WithUserLock implements attendance.UserLocker.
func (l *userLocker) WithUserLock(ctx context.Context, userID string, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", "user:"+userID); err != nil {
			return fmt.Errorf("acquire user lock: %w", err)
		}
		return fn(WithTx(ctx, tx))
	})
}
