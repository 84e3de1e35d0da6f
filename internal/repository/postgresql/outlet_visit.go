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

const outletVisitColumns = `
	v.id, v.user_id, v.outlet_id, v.check_in_time, v.check_in_latitude, v.check_in_longitude,
	v.check_out_time, v.check_out_latitude, v.check_out_longitude,
	v.distance_meters, v.auto_closed, v.created_at, v.updated_at, o.name`

type outletVisitRepository struct {
	db *database.DB
}

func NewOutletVisitRepository(db *database.DB) attendance.OutletVisitRepository {
	return &outletVisitRepository{db: db}
}

func scanOutletVisit(row pgx.Row) (attendance.OutletVisitRecord, error) {
	var (
		v              attendance.OutletVisitRecord
		inLat, inLon   *float64
		outLat, outLon *float64
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.OutletID, &v.CheckInTime, &inLat, &inLon,
		&v.CheckOutTime, &outLat, &outLon,
		&v.DistanceMeters, &v.AutoClosed, &v.CreatedAt, &v.UpdatedAt, &v.OutletName,
	)
	if err != nil {
		return attendance.OutletVisitRecord{}, err
	}
	v.CheckInLocation = toLocation(inLat, inLon)
	v.CheckOutLocation = toLocation(outLat, outLon)
	return v, nil
}

func collectOutletVisits(rows pgx.Rows) ([]attendance.OutletVisitRecord, error) {
	defer rows.Close()
	visits := make([]attendance.OutletVisitRecord, 0)
	for rows.Next() {
		v, err := scanOutletVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outlet visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outlet visits: %w", err)
	}
	return visits, nil
}

// GetOpen implements attendance.OutletVisitRepository.
func (r *outletVisitRepository) GetOpen(ctx context.Context, userID string, outletID string) (attendance.OutletVisitRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + outletVisitColumns + `
		FROM outlet_visits v
		JOIN outlets o ON o.id = v.outlet_id
		WHERE v.user_id = $1 AND v.outlet_id = $2 AND v.check_out_time IS NULL
		LIMIT 1`

	v, err := scanOutletVisit(q.QueryRow(ctx, query, userID, outletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OutletVisitRecord{}, err
		}
		return attendance.OutletVisitRecord{}, fmt.Errorf("failed to get open outlet visit: %w", err)
	}
	return v, nil
}

// ListOpen implements attendance.OutletVisitRepository.
func (r *outletVisitRepository) ListOpen(ctx context.Context, userID string) ([]attendance.OutletVisitRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + outletVisitColumns + `
		FROM outlet_visits v
		JOIN outlets o ON o.id = v.outlet_id
		WHERE v.user_id = $1 AND v.check_out_time IS NULL
		ORDER BY v.check_in_time`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open outlet visits: %w", err)
	}
	return collectOutletVisits(rows)
}

// Create implements attendance.OutletVisitRepository.
func (r *outletVisitRepository) Create(ctx context.Context, record attendance.OutletVisitRecord) (attendance.OutletVisitRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return attendance.OutletVisitRecord{}, err
	}
	lat, lon := locationArgs(record.CheckInLocation)

	query := `
		WITH v AS (
			INSERT INTO outlet_visits (id, user_id, outlet_id, check_in_time, check_in_latitude, check_in_longitude, distance_meters)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + outletVisitColumns + `
		FROM v
		JOIN outlets o ON o.id = v.outlet_id`

	v, err := scanOutletVisit(q.QueryRow(ctx, query,
		id, record.UserID, record.OutletID, record.CheckInTime, lat, lon, record.DistanceMeters,
	))
	if err != nil {
		if IsUniqueViolation(err, ConstraintOneOpenVisit) {
			return attendance.OutletVisitRecord{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.OutletVisitRecord{}, fmt.Errorf("failed to create outlet visit: %w", err)
	}
	return v, nil
}

// Close implements attendance.OutletVisitRepository.
func (r *outletVisitRepository) Close(ctx context.Context, id string, at time.Time, location *attendance.Location, autoClosed bool) (attendance.OutletVisitRecord, error) {
	q := GetQuerier(ctx, r.db)
	lat, lon := locationArgs(location)

	query := `
		WITH v AS (
			UPDATE outlet_visits
			SET check_out_time = $2,
				check_out_latitude = $3,
				check_out_longitude = $4,
				auto_closed = $5,
				updated_at = NOW()
			WHERE id = $1 AND check_out_time IS NULL
			RETURNING *
		)
		SELECT ` + outletVisitColumns + `
		FROM v
		JOIN outlets o ON o.id = v.outlet_id`

	v, err := scanOutletVisit(q.QueryRow(ctx, query, id, at, lat, lon, autoClosed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.OutletVisitRecord{}, err
		}
		return attendance.OutletVisitRecord{}, fmt.Errorf("failed to close outlet visit: %w", err)
	}
	return v, nil
}

// ListByUser implements attendance.OutletVisitRepository.
func (r *outletVisitRepository) ListByUser(ctx context.Context, userID string, filter attendance.VisitFilter) ([]attendance.OutletVisitRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"v.user_id = $1"}
	args := []interface{}{userID}
	if filter.OutletID != nil && *filter.OutletID != "" {
		args = append(args, *filter.OutletID)
		where = append(where, fmt.Sprintf("v.outlet_id = $%d", len(args)))
	}
	where, args = appendDateRange(where, args, "v.check_in_time", filter.From, filter.To)
	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM outlet_visits v WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count outlet visits: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM outlet_visits v
		JOIN outlets o ON o.id = v.outlet_id
		WHERE %s
		ORDER BY v.check_in_time DESC
		LIMIT $%d OFFSET $%d`, outletVisitColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list outlet visits: %w", err)
	}
	visits, err := collectOutletVisits(rows)
	if err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}
