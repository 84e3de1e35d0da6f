//go:build container

package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOutlet(t *testing.T, ctx context.Context, name string) outlet.Outlet {
	t.Helper()
	created, err := postgresql.NewOutletRepository(testDB).Create(ctx, outlet.Outlet{
		Name:        name,
		Address:     "Jl. Thamrin 10",
		OwnerEmail:  "owner@example.com",
		OwnerPhone:  "081200000000",
		OutletPhone: "0211234567",
		Latitude:    -6.2,
		Longitude:   106.8,
	})
	require.NoError(t, err)
	return created
}

func punchIn(t *testing.T, ctx context.Context, userID string) attendance.AttendanceRecord {
	t.Helper()
	now := time.Now().UTC()
	rec, err := postgresql.NewAttendanceRepository(testDB).Create(ctx, attendance.AttendanceRecord{
		UserID:          userID,
		PunchInTime:     &now,
		PunchInLocation: &attendance.Location{Latitude: -6.2, Longitude: 106.8},
	})
	require.NoError(t, err)
	return rec
}

func TestAttendanceRepository_CreateAndClose(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewAttendanceRepository(testDB)

	opened := punchIn(t, ctx, u.ID)
	assert.True(t, opened.IsOpen())
	assert.InDelta(t, -6.2, opened.PunchInLocation.Latitude, 1e-9)

	open, err := repo.GetOpen(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, open.ID)

	closed, err := repo.Close(ctx, opened.ID, time.Now().UTC(), &attendance.Location{Latitude: -6.3, Longitude: 106.9}, false)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	require.NotNil(t, closed.PunchOutLocation)
	assert.InDelta(t, 106.9, closed.PunchOutLocation.Longitude, 1e-9)

	_, err = repo.GetOpen(ctx, u.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestAttendanceRepository_Close_AlreadyClosed(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewAttendanceRepository(testDB)
	opened := punchIn(t, ctx, u.ID)

	_, err := repo.Close(ctx, opened.ID, time.Now().UTC(), nil, true)
	require.NoError(t, err)
	_, err = repo.Close(ctx, opened.ID, time.Now().UTC(), nil, true)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestAttendanceRepository_Create_SecondOpenRejected(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	punchIn(t, ctx, u.ID)
	now := time.Now().UTC()

	_, err := postgresql.NewAttendanceRepository(testDB).Create(ctx, attendance.AttendanceRecord{
		UserID:          u.ID,
		PunchInTime:     &now,
		PunchInLocation: &attendance.Location{Latitude: 1, Longitude: 1},
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestAttendanceRepository_ListByUser_DateRangeAndPaging(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewAttendanceRepository(testDB)

	for _, day := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		in, _ := time.Parse(time.DateOnly, day)
		in = in.Add(9 * time.Hour)
		rec, err := repo.Create(ctx, attendance.AttendanceRecord{
			UserID:          u.ID,
			PunchInTime:     &in,
			PunchInLocation: &attendance.Location{Latitude: 0, Longitude: 0},
		})
		require.NoError(t, err)
		_, err = repo.Close(ctx, rec.ID, in.Add(8*time.Hour), nil, false)
		require.NoError(t, err)
	}

	from, to := "2026-03-02", "2026-03-03"
	records, total, err := repo.ListByUser(ctx, u.ID, attendance.AttendanceFilter{From: &from, To: &to, Page: 1, Limit: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-03-03", records[0].PunchInTime.UTC().Format(time.DateOnly))
}

func TestAttendanceRepository_ListStaleOpen(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewAttendanceRepository(testDB)
	old := time.Now().UTC().Add(-20 * time.Hour)
	_, err := repo.Create(ctx, attendance.AttendanceRecord{
		UserID:          u.ID,
		PunchInTime:     &old,
		PunchInLocation: &attendance.Location{},
	})
	require.NoError(t, err)

	stale, err := repo.ListStaleOpen(ctx, time.Now().UTC().Add(-16*time.Hour), 10)
	require.NoError(t, err)
	fresh, err := repo.ListStaleOpen(ctx, time.Now().UTC().Add(-24*time.Hour), 10)
	require.NoError(t, err)

	assert.Len(t, stale, 1)
	assert.Empty(t, fresh)
}

func TestOutletVisitRepository_OpenPerOutlet(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	first := createTestOutlet(t, ctx, "Toko Satu")
	second := createTestOutlet(t, ctx, "Toko Dua")
	repo := postgresql.NewOutletVisitRepository(testDB)
	now := time.Now().UTC()
	distance := 12.5

	visit, err := repo.Create(ctx, attendance.OutletVisitRecord{
		UserID: u.ID, OutletID: first.ID, CheckInTime: &now,
		CheckInLocation: &attendance.Location{Latitude: -6.2, Longitude: 106.8},
		DistanceMeters:  &distance,
	})
	require.NoError(t, err)
	assert.Equal(t, "Toko Satu", *visit.OutletName)
	assert.InDelta(t, 12.5, *visit.DistanceMeters, 1e-9)

	_, err = repo.Create(ctx, attendance.OutletVisitRecord{
		UserID: u.ID, OutletID: second.ID, CheckInTime: &now,
		CheckInLocation: &attendance.Location{Latitude: -6.2, Longitude: 106.8},
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.OutletVisitRecord{
		UserID: u.ID, OutletID: first.ID, CheckInTime: &now,
		CheckInLocation: &attendance.Location{Latitude: -6.2, Longitude: 106.8},
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	open, err := repo.ListOpen(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	closed, err := repo.Close(ctx, visit.ID, time.Now().UTC(), &attendance.Location{Latitude: -6.2, Longitude: 106.8}, false)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())

	_, err = repo.GetOpen(ctx, u.ID, first.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	visits, total, err := repo.ListByUser(ctx, u.ID, attendance.VisitFilter{OutletID: &first.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, visits, 1)
}

func TestUserLocker_ConcurrentPunchInLeavesOneOpenRecord(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	locker := postgresql.NewUserLocker(testDB)
	repo := postgresql.NewAttendanceRepository(testDB)

	const workers = 10
	var created, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithUserLock(ctx, u.ID, func(ctx context.Context) error {
				if _, err := repo.GetOpen(ctx, u.ID); err == nil {
					return attendance.ErrAlreadyPunchedIn
				} else if !errors.Is(err, pgx.ErrNoRows) {
					return err
				}
				now := time.Now().UTC()
				_, err := repo.Create(ctx, attendance.AttendanceRecord{
					UserID:          u.ID,
					PunchInTime:     &now,
					PunchInLocation: &attendance.Location{Latitude: 1, Longitude: 1},
				})
				return err
			})
			switch {
			case err == nil:
				atomic.AddInt32(&created, 1)
			case errors.Is(err, attendance.ErrAlreadyPunchedIn):
				atomic.AddInt32(&rejected, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created)
	assert.Equal(t, int32(workers-1), rejected)

	var open int
	require.NoError(t, testDB.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE user_id = $1 AND punch_out_time IS NULL`, u.ID).Scan(&open))
	assert.Equal(t, 1, open)
}

func TestUserLocker_RollsBackOnError(t *testing.T) {
	defer cleanupTestData(t)
	ctx := context.Background()
	u := createTestUser(t, ctx, "rep@example.com", "081234567890")
	repo := postgresql.NewAttendanceRepository(testDB)
	boom := errors.New("boom")

	err := postgresql.NewUserLocker(testDB).WithUserLock(ctx, u.ID, func(ctx context.Context) error {
		now := time.Now().UTC()
		if _, err := repo.Create(ctx, attendance.AttendanceRecord{
			UserID: u.ID, PunchInTime: &now, PunchInLocation: &attendance.Location{},
		}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, err = repo.GetOpen(ctx, u.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
