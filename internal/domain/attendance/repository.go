package attendance

import (
	"context"
	"time"
)

// AttendanceRepository returns pgx.ErrNoRows from single-row lookups that match nothing.
type AttendanceRepository interface {
	GetOpen(ctx context.Context, userID string) (AttendanceRecord, error)
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	// Close sets the punch-out fields only if the record is still open.
	Close(ctx context.Context, id string, at time.Time, location *Location, autoClosed bool) (AttendanceRecord, error)
	ListByUser(ctx context.Context, userID string, filter AttendanceFilter) ([]AttendanceRecord, int64, error)
	ListStaleOpen(ctx context.Context, punchedInBefore time.Time, limit int) ([]AttendanceRecord, error)
}

type OutletVisitRepository interface {
	GetOpen(ctx context.Context, userID string, outletID string) (OutletVisitRecord, error)
	ListOpen(ctx context.Context, userID string) ([]OutletVisitRecord, error)
	Create(ctx context.Context, record OutletVisitRecord) (OutletVisitRecord, error)
	// Close sets the check-out fields only if the visit is still open.
	Close(ctx context.Context, id string, at time.Time, location *Location, autoClosed bool) (OutletVisitRecord, error)
	ListByUser(ctx context.Context, userID string, filter VisitFilter) ([]OutletVisitRecord, int64, error)
}

// UserLocker serialises tracker operations per user. fn receives a context that carries
// the lock's transaction, so repository calls made with it join that transaction.
type UserLocker interface {
	WithUserLock(ctx context.Context, userID string, fn func(ctx context.Context) error) error
}
