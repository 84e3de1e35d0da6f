package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

// staleBatchSize bounds how many shifts one sweep pass loads at a time.
const staleBatchSize = 100

// EventPublisher receives tracker transitions after they are committed.
type EventPublisher interface {
	Publish(userID string, eventType string, data interface{})
}

// OutletFinder is the part of the outlet repository the tracker needs.
type OutletFinder interface {
	GetByID(ctx context.Context, id string) (outlet.Outlet, error)
}

type AttendanceServiceImpl struct {
	locker attendance.UserLocker
	attendance.AttendanceRepository
	visits    attendance.OutletVisitRepository
	outlets   OutletFinder
	publisher EventPublisher
	now       func() time.Time
}

func NewAttendanceService(
	locker attendance.UserLocker,
	attendanceRepo attendance.AttendanceRepository,
	visitRepo attendance.OutletVisitRepository,
	outletRepo OutletFinder,
	publisher EventPublisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		locker:               locker,
		AttendanceRepository: attendanceRepo,
		visits:               visitRepo,
		outlets:              outletRepo,
		publisher:            publisher,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// openAttendance returns the user's open shift or ErrNotPunchedIn.
func (a *AttendanceServiceImpl) openAttendance(ctx context.Context, userID string) (attendance.AttendanceRecord, error) {
	rec, err := a.AttendanceRepository.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrNotPunchedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return rec, nil
}

// openVisit returns the user's open visit at outletID or ErrNotCheckedIn.
func (a *AttendanceServiceImpl) openVisit(ctx context.Context, userID string, outletID string) (attendance.OutletVisitRecord, error) {
	visit, err := a.visits.GetOpen(ctx, userID, outletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OutletVisitRecord{}, attendance.ErrNotCheckedIn
		}
		return attendance.OutletVisitRecord{}, fmt.Errorf("failed to get open outlet visit: %w", err)
	}
	return visit, nil
}

func (a *AttendanceServiceImpl) publish(userID string, event attendance.EventType, data interface{}) {
	if a.publisher == nil {
		return
	}
	a.publisher.Publish(userID, string(event), data)
}

// PunchIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchIn(ctx context.Context, userID string, location attendance.Location) (attendance.AttendanceRecord, error) {
	if err := location.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	var created attendance.AttendanceRecord
	err := a.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		_, err := a.openAttendance(ctx, userID)
		if err == nil {
			return attendance.ErrAlreadyPunchedIn
		}
		if !errors.Is(err, attendance.ErrNotPunchedIn) {
			return err
		}

		now := a.now()
		created, err = a.AttendanceRepository.Create(ctx, attendance.AttendanceRecord{
			UserID:          userID,
			PunchInTime:     &now,
			PunchInLocation: &location,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
				return err
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	a.publish(userID, attendance.EventPunchedIn, attendance.NewAttendanceResponse(created))
	return created, nil
}

// PunchOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PunchOut(ctx context.Context, userID string, location attendance.Location) (attendance.AttendanceRecord, error) {
	if err := location.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	var closed attendance.AttendanceRecord
	err := a.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		open, err := a.openAttendance(ctx, userID)
		if err != nil {
			return err
		}

		openVisits, err := a.visits.ListOpen(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list open outlet visits: %w", err)
		}
		if len(openVisits) > 0 {
			return attendance.ErrOutletVisitStillOpen
		}

		closed, err = a.AttendanceRepository.Close(ctx, open.ID, a.now(), &location, false)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotPunchedIn
			}
			return fmt.Errorf("failed to close attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	a.publish(userID, attendance.EventPunchedOut, attendance.NewAttendanceResponse(closed))
	return closed, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string, outletID string, location attendance.Location) (attendance.OutletVisitRecord, error) {
	if err := location.Validate(); err != nil {
		return attendance.OutletVisitRecord{}, err
	}

	target, err := a.outlets.GetByID(ctx, outletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OutletVisitRecord{}, outlet.ErrOutletNotFound
		}
		return attendance.OutletVisitRecord{}, fmt.Errorf("failed to get outlet: %w", err)
	}

	var created attendance.OutletVisitRecord
	err = a.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		if _, err := a.openAttendance(ctx, userID); err != nil {
			return err
		}

		_, err := a.openVisit(ctx, userID, outletID)
		if err == nil {
			return attendance.ErrAlreadyCheckedIn
		}
		if !errors.Is(err, attendance.ErrNotCheckedIn) {
			return err
		}

		now := a.now()
		distance := utils.RoundTo(utils.CalculateHaversineDistance(
			location.Latitude, location.Longitude, target.Latitude, target.Longitude,
		), 2)
		created, err = a.visits.Create(ctx, attendance.OutletVisitRecord{
			UserID:          userID,
			OutletID:        outletID,
			CheckInTime:     &now,
			CheckInLocation: &location,
			DistanceMeters:  &distance,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				return err
			}
			return fmt.Errorf("failed to create outlet visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.OutletVisitRecord{}, err
	}

	a.publish(userID, attendance.EventCheckedIn, attendance.NewOutletVisitResponse(created))
	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string, outletID string, location attendance.Location) (attendance.OutletVisitRecord, error) {
	if err := location.Validate(); err != nil {
		return attendance.OutletVisitRecord{}, err
	}

	var closed attendance.OutletVisitRecord
	err := a.locker.WithUserLock(ctx, userID, func(ctx context.Context) error {
		if _, err := a.openAttendance(ctx, userID); err != nil {
			return err
		}

		visit, err := a.openVisit(ctx, userID, outletID)
		if err != nil {
			return err
		}

		closed, err = a.visits.Close(ctx, visit.ID, a.now(), &location, false)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to close outlet visit: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.OutletVisitRecord{}, err
	}

	a.publish(userID, attendance.EventCheckedOut, attendance.NewOutletVisitResponse(closed))
	return closed, nil
}

// snapshot reads the open shift and open visits without taking the user lock.
func (a *AttendanceServiceImpl) snapshot(ctx context.Context, userID string) (*attendance.AttendanceRecord, []attendance.OutletVisitRecord, error) {
	var open *attendance.AttendanceRecord
	rec, err := a.openAttendance(ctx, userID)
	switch {
	case err == nil:
		open = &rec
	case !errors.Is(err, attendance.ErrNotPunchedIn):
		return nil, nil, err
	}

	visits, err := a.visits.ListOpen(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list open outlet visits: %w", err)
	}
	return open, visits, nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, userID string) (attendance.Status, error) {
	open, visits, err := a.snapshot(ctx, userID)
	if err != nil {
		return attendance.Status{}, err
	}
	return attendance.Status{
		IsPunchedIn: open != nil && open.IsOpen(),
		IsCheckedIn: len(visits) > 0,
	}, nil
}

// AttendanceStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AttendanceStatus(ctx context.Context, userID string) (attendance.AttendanceStatusResponse, error) {
	open, visits, err := a.snapshot(ctx, userID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}
	status := attendance.Status{IsPunchedIn: open != nil && open.IsOpen(), IsCheckedIn: len(visits) > 0}
	return attendance.NewAttendanceStatusResponse(status, open, visits), nil
}

// VisitStatus implements attendance.AttendanceService. A non-nil outletID narrows the
// check-in state and the open visit list to that outlet.
func (a *AttendanceServiceImpl) VisitStatus(ctx context.Context, userID string, outletID *string) (attendance.VisitStatusResponse, error) {
	open, visits, err := a.snapshot(ctx, userID)
	if err != nil {
		return attendance.VisitStatusResponse{}, err
	}

	if outletID != nil && *outletID != "" {
		scoped := make([]attendance.OutletVisitRecord, 0, 1)
		for _, v := range visits {
			if v.OutletID == *outletID {
				scoped = append(scoped, v)
			}
		}
		visits = scoped
	}

	status := attendance.Status{IsPunchedIn: open != nil && open.IsOpen(), IsCheckedIn: len(visits) > 0}
	return attendance.NewVisitStatusResponse(status, visits), nil
}

func pageInfo(total int64, page, limit int) (int, string) {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}
	return totalPages, showing
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, userID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec))
	}

	totalPages, showing := pageInfo(total, filter.Page, filter.Limit)
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// ListVisits implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListVisits(ctx context.Context, userID string, filter attendance.VisitFilter) (attendance.ListVisitResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListVisitResponse{}, err
	}

	visits, total, err := a.visits.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListVisitResponse{}, fmt.Errorf("failed to list outlet visits: %w", err)
	}

	responses := make([]attendance.OutletVisitResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, attendance.NewOutletVisitResponse(v))
	}

	totalPages, showing := pageInfo(total, filter.Page, filter.Limit)
	return attendance.ListVisitResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Visits:     responses,
	}, nil
}

// CloseStaleShifts implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CloseStaleShifts(ctx context.Context, maxDuration time.Duration) (int, error) {
	closedCount := 0
	for {
		cutoff := a.now().Add(-maxDuration)
		stale, err := a.AttendanceRepository.ListStaleOpen(ctx, cutoff, staleBatchSize)
		if err != nil {
			return closedCount, fmt.Errorf("failed to list stale attendances: %w", err)
		}

		closedInBatch := 0
		for _, rec := range stale {
			closed, err := a.closeStaleShift(ctx, rec, maxDuration)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return closedCount, err
				}
				slog.Error("Failed to auto-close shift", "attendance_id", rec.ID, "user_id", rec.UserID, "error", err)
				continue
			}
			if closed {
				closedInBatch++
			}
		}
		closedCount += closedInBatch

		if len(stale) < staleBatchSize || closedInBatch == 0 {
			return closedCount, nil
		}
	}
}

// closeStaleShift closes rec and its open visits under the user lock. It reports false when
// the shift was closed by someone else in the meantime.
func (a *AttendanceServiceImpl) closeStaleShift(ctx context.Context, rec attendance.AttendanceRecord, maxDuration time.Duration) (bool, error) {
	var (
		closedShift  attendance.AttendanceRecord
		closedVisits []attendance.OutletVisitRecord
	)

	err := a.locker.WithUserLock(ctx, rec.UserID, func(ctx context.Context) error {
		open, err := a.openAttendance(ctx, rec.UserID)
		if err != nil {
			return err
		}
		if open.ID != rec.ID {
			return attendance.ErrNotPunchedIn
		}

		closeAt := open.PunchInTime.Add(maxDuration)
		shiftEnd := closeAt

		visits, err := a.visits.ListOpen(ctx, rec.UserID)
		if err != nil {
			return fmt.Errorf("failed to list open outlet visits: %w", err)
		}
		for _, v := range visits {
			at := closeAt
			if v.CheckInTime != nil && v.CheckInTime.After(at) {
				at = *v.CheckInTime
			}
			closedVisit, err := a.visits.Close(ctx, v.ID, at, nil, true)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				return fmt.Errorf("failed to auto-close outlet visit %s: %w", v.ID, err)
			}
			if at.After(shiftEnd) {
				shiftEnd = at
			}
			closedVisits = append(closedVisits, closedVisit)
		}

		closedShift, err = a.AttendanceRepository.Close(ctx, open.ID, shiftEnd, nil, true)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return attendance.ErrNotPunchedIn
			}
			return fmt.Errorf("failed to auto-close attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNotPunchedIn) {
			return false, nil
		}
		return false, err
	}

	slog.Info("Auto-closed stale shift",
		"attendance_id", closedShift.ID,
		"user_id", closedShift.UserID,
		"closed_visits", len(closedVisits),
	)
	a.publish(closedShift.UserID, attendance.EventAutoClosed, attendance.NewAutoClosedEvent(closedShift, closedVisits))
	return true, nil
}
