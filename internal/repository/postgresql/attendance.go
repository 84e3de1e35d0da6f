package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/attendance"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, user_id, punch_in_time, punch_in_latitude, punch_in_longitude,
	punch_out_time, punch_out_latitude, punch_out_longitude,
	auto_closed, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var (
		rec            attendance.AttendanceRecord
		inLat, inLon   *float64
		outLat, outLon *float64
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.PunchInTime, &inLat, &inLon,
		&rec.PunchOutTime, &outLat, &outLon,
		&rec.AutoClosed, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	rec.PunchInLocation = toLocation(inLat, inLon)
	rec.PunchOutLocation = toLocation(outLat, outLon)
	return rec, nil
}

func toLocation(lat, lon *float64) *attendance.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &attendance.Location{Latitude: *lat, Longitude: *lon}
}

func locationArgs(loc *attendance.Location) (lat, lon *float64) {
	if loc == nil {
		return nil, nil
	}
	return &loc.Latitude, &loc.Longitude
}

// GetOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpen(ctx context.Context, userID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE user_id = $1 AND punch_out_time IS NULL
		ORDER BY punch_in_time DESC
		LIMIT 1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, err
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get open attendance: %w", err)
	}
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	lat, lon := locationArgs(record.PunchInLocation)

	query := `
		INSERT INTO attendances (id, user_id, punch_in_time, punch_in_latitude, punch_in_longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, id, record.UserID, record.PunchInTime, lat, lon))
	if err != nil {
		if IsUniqueViolation(err, ConstraintOneOpenAttendance) {
			return attendance.AttendanceRecord{}, attendance.ErrAlreadyPunchedIn
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return rec, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, at time.Time, location *attendance.Location, autoClosed bool) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)
	lat, lon := locationArgs(location)

	query := `
		UPDATE attendances
		SET punch_out_time = $2,
			punch_out_latitude = $3,
			punch_out_longitude = $4,
			auto_closed = $5,
			updated_at = NOW()
		WHERE id = $1 AND punch_out_time IS NULL
		RETURNING ` + attendanceColumns

	rec, err := scanAttendance(q.QueryRow(ctx, query, id, at, lat, lon, autoClosed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, err
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to close attendance: %w", err)
	}
	return rec, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := []string{"user_id = $1"}
	args := []interface{}{userID}
	where, args = appendDateRange(where, args, "punch_in_time", filter.From, filter.To)
	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM attendances WHERE %s
		ORDER BY punch_in_time DESC
		LIMIT $%d OFFSET $%d`, attendanceColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}
	return records, total, nil
}

// ListStaleOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListStaleOpen(ctx context.Context, punchedInBefore time.Time, limit int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE punch_out_time IS NULL AND punch_in_time < $1
		ORDER BY punch_in_time
		LIMIT $2`

	rows, err := q.Query(ctx, query, punchedInBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// appendDateRange adds inclusive YYYY-MM-DD bounds on column.
func appendDateRange(where []string, args []interface{}, column string, from, to *string) ([]string, []interface{}) {
	if from != nil && *from != "" {
		args = append(args, *from)
		where = append(where, fmt.Sprintf("%s >= $%d::date", column, len(args)))
	}
	if to != nil && *to != "" {
		args = append(args, *to)
		where = append(where, fmt.Sprintf("%s < $%d::date + 1", column, len(args)))
	}
	return where, args
}
