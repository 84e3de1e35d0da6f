package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	PunchIn(ctx context.Context, userID string, location Location) (AttendanceRecord, error)
	PunchOut(ctx context.Context, userID string, location Location) (AttendanceRecord, error)
	CheckIn(ctx context.Context, userID string, outletID string, location Location) (OutletVisitRecord, error)
	CheckOut(ctx context.Context, userID string, outletID string, location Location) (OutletVisitRecord, error)
	Status(ctx context.Context, userID string) (Status, error)

	AttendanceStatus(ctx context.Context, userID string) (AttendanceStatusResponse, error)
	VisitStatus(ctx context.Context, userID string, outletID *string) (VisitStatusResponse, error)
	ListAttendance(ctx context.Context, userID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListVisits(ctx context.Context, userID string, filter VisitFilter) (ListVisitResponse, error)

	// CloseStaleShifts auto-closes shifts open longer than maxDuration and returns how many were closed.
	CloseStaleShifts(ctx context.Context, maxDuration time.Duration) (int, error)
}
