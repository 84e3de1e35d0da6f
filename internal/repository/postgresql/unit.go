package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/unit"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const unitColumns = `u.id, u.name, u.created_at, u.updated_at`

type unitRepositoryImpl struct {
	db *database.DB
}

func NewUnitRepository(db *database.DB) unit.UnitRepository {
	return &unitRepositoryImpl{db: db}
}

func scanUnit(row pgx.Row) (unit.Unit, error) {
	var u unit.Unit
	err := row.Scan(&u.ID, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create implements unit.UnitRepository.
func (r *unitRepositoryImpl) Create(ctx context.Context, u unit.Unit) (unit.Unit, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return unit.Unit{}, err
	}

	created, err := scanUnit(q.QueryRow(ctx,
		`INSERT INTO units AS u (id, name) VALUES ($1, $2) RETURNING `+unitColumns,
		id, u.Name,
	))
	if err != nil {
		return unit.Unit{}, singleRowErr(err, "create unit")
	}
	return created, nil
}

// GetByID implements unit.UnitRepository.
func (r *unitRepositoryImpl) GetByID(ctx context.Context, id string) (unit.Unit, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUnit(q.QueryRow(ctx, `SELECT `+unitColumns+` FROM units u WHERE u.id = $1`, id))
	if err != nil {
		return unit.Unit{}, singleRowErr(err, "get unit")
	}
	return u, nil
}

// Update implements unit.UnitRepository.
func (r *unitRepositoryImpl) Update(ctx context.Context, u unit.Unit) (unit.Unit, error) {
	q := GetQuerier(ctx, r.db)

	updated, err := scanUnit(q.QueryRow(ctx,
		`UPDATE units AS u SET name = $2, updated_at = NOW() WHERE u.id = $1 RETURNING `+unitColumns,
		u.ID, u.Name,
	))
	if err != nil {
		return unit.Unit{}, singleRowErr(err, "update unit")
	}
	return updated, nil
}

// Delete implements unit.UnitRepository.
func (r *unitRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "units", id, unit.ErrUnitStillInUse)
}

// List implements unit.UnitRepository.
func (r *unitRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]unit.Unit, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("u.name", filter.Name)

	total, err := lq.count(ctx, q, "units u")
	if err != nil {
		return nil, 0, singleRowErr(err, "count units")
	}

	rows, err := q.Query(ctx, `SELECT `+unitColumns+` FROM units u`+lq.whereClause()+lq.page("u", filter), lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list units")
	}
	defer rows.Close()

	units := make([]unit.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan unit")
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate units")
	}
	return units, total, nil
}

// Lookup implements unit.UnitRepository.
func (r *unitRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	return lookupAll(ctx, GetQuerier(ctx, r.db), "units")
}

// Search implements unit.UnitRepository.
func (r *unitRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	return searchByName(ctx, GetQuerier(ctx, r.db), "units", term, limit, offset)
}

// Exists implements unit.UnitRepository.
func (r *unitRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "units", id)
}
