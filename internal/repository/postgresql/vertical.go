package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/vertical"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const verticalColumns = `v.id, v.name, v.division_id, v.created_at, v.updated_at, d.name`

type verticalRepositoryImpl struct {
	db *database.DB
}

func NewVerticalRepository(db *database.DB) vertical.VerticalRepository {
	return &verticalRepositoryImpl{db: db}
}

func scanVertical(row pgx.Row) (vertical.Vertical, error) {
	var v vertical.Vertical
	err := row.Scan(&v.ID, &v.Name, &v.DivisionID, &v.CreatedAt, &v.UpdatedAt, &v.DivisionName)
	return v, err
}

func verticalWriteErr(err error, action string) error {
	if IsForeignKeyViolation(err) {
		return master.MissingRef("division_id")
	}
	return singleRowErr(err, action)
}

// Create implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Create(ctx context.Context, v vertical.Vertical) (vertical.Vertical, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return vertical.Vertical{}, err
	}

	query := `
		WITH v AS (
			INSERT INTO verticals (id, name, division_id)
			VALUES ($1, $2, $3)
			RETURNING *
		)
		SELECT ` + verticalColumns + `
		FROM v
		JOIN divisions d ON d.id = v.division_id`

	created, err := scanVertical(q.QueryRow(ctx, query, id, v.Name, v.DivisionID))
	if err != nil {
		return vertical.Vertical{}, verticalWriteErr(err, "create vertical")
	}
	return created, nil
}

// GetByID implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) GetByID(ctx context.Context, id string) (vertical.Vertical, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + verticalColumns + `
		FROM verticals v
		JOIN divisions d ON d.id = v.division_id
		WHERE v.id = $1`

	v, err := scanVertical(q.QueryRow(ctx, query, id))
	if err != nil {
		return vertical.Vertical{}, singleRowErr(err, "get vertical")
	}
	return v, nil
}

// Update implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Update(ctx context.Context, v vertical.Vertical) (vertical.Vertical, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH v AS (
			UPDATE verticals
			SET name = $2, division_id = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + verticalColumns + `
		FROM v
		JOIN divisions d ON d.id = v.division_id`

	updated, err := scanVertical(q.QueryRow(ctx, query, v.ID, v.Name, v.DivisionID))
	if err != nil {
		return vertical.Vertical{}, verticalWriteErr(err, "update vertical")
	}
	return updated, nil
}

// Delete implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "verticals", id, vertical.ErrVerticalStillInUse)
}

// List implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]vertical.Vertical, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("v.name", filter.Name)
	lq.addEquals("v.division_id", filter.DivisionID)

	total, err := lq.count(ctx, q, "verticals v")
	if err != nil {
		return nil, 0, singleRowErr(err, "count verticals")
	}

	query := `SELECT ` + verticalColumns + `
		FROM verticals v
		JOIN divisions d ON d.id = v.division_id` + lq.whereClause() + lq.page("v", filter)
	rows, err := q.Query(ctx, query, lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list verticals")
	}
	defer rows.Close()

	verticals := make([]vertical.Vertical, 0)
	for rows.Next() {
		v, err := scanVertical(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan vertical")
		}
		verticals = append(verticals, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate verticals")
	}
	return verticals, total, nil
}

// Lookup implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	return lookupAll(ctx, GetQuerier(ctx, r.db), "verticals")
}

// Search implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	return searchByName(ctx, GetQuerier(ctx, r.db), "verticals", term, limit, offset)
}

// Exists implements vertical.VerticalRepository.
func (r *verticalRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "verticals", id)
}
