package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const divisionColumns = `d.id, d.name, d.abbreviation, d.created_at, d.updated_at`

type divisionRepositoryImpl struct {
	db *database.DB
}

func NewDivisionRepository(db *database.DB) division.DivisionRepository {
	return &divisionRepositoryImpl{db: db}
}

func scanDivision(row pgx.Row) (division.Division, error) {
	var d division.Division
	err := row.Scan(&d.ID, &d.Name, &d.Abbreviation, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func divisionWriteErr(err error, action string) error {
	if IsUniqueViolation(err, ConstraintDivisionAbbreviation) {
		return division.ErrAbbreviationExists
	}
	return singleRowErr(err, action)
}

// Create implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Create(ctx context.Context, d division.Division) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return division.Division{}, err
	}

	query := `
		INSERT INTO divisions AS d (id, name, abbreviation)
		VALUES ($1, $2, $3)
		RETURNING ` + divisionColumns

	created, err := scanDivision(q.QueryRow(ctx, query, id, d.Name, d.Abbreviation))
	if err != nil {
		return division.Division{}, divisionWriteErr(err, "create division")
	}
	return created, nil
}

// GetByID implements division.DivisionRepository.
func (r *divisionRepositoryImpl) GetByID(ctx context.Context, id string) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDivision(q.QueryRow(ctx, `SELECT `+divisionColumns+` FROM divisions d WHERE d.id = $1`, id))
	if err != nil {
		return division.Division{}, singleRowErr(err, "get division")
	}
	return d, nil
}

// Update implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Update(ctx context.Context, d division.Division) (division.Division, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE divisions AS d
		SET name = $2, abbreviation = $3, updated_at = NOW()
		WHERE d.id = $1
		RETURNING ` + divisionColumns

	updated, err := scanDivision(q.QueryRow(ctx, query, d.ID, d.Name, d.Abbreviation))
	if err != nil {
		return division.Division{}, divisionWriteErr(err, "update division")
	}
	return updated, nil
}

// Delete implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "divisions", id, division.ErrDivisionStillInUse)
}

// List implements division.DivisionRepository.
func (r *divisionRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]division.Division, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("d.name", filter.Name)
	lq.addContains("d.abbreviation", filter.Abbreviation)

	total, err := lq.count(ctx, q, "divisions d")
	if err != nil {
		return nil, 0, singleRowErr(err, "count divisions")
	}

	query := `SELECT ` + divisionColumns + ` FROM divisions d` + lq.whereClause() + lq.page("d", filter)
	rows, err := q.Query(ctx, query, lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list divisions")
	}
	defer rows.Close()

	divisions := make([]division.Division, 0)
	for rows.Next() {
		d, err := scanDivision(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan division")
		}
		divisions = append(divisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate divisions")
	}
	return divisions, total, nil
}

// Lookup implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	return lookupAll(ctx, GetQuerier(ctx, r.db), "divisions")
}

// Search implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	return searchByName(ctx, GetQuerier(ctx, r.db), "divisions", term, limit, offset)
}

// Exists implements division.DivisionRepository.
func (r *divisionRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "divisions", id)
}
