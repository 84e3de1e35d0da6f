package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/brand"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const brandColumns = `b.id, b.name, b.vertical_id, b.created_at, b.updated_at, v.name, v.division_id, d.name`

const brandJoins = `
	JOIN verticals v ON v.id = b.vertical_id
	JOIN divisions d ON d.id = v.division_id`

type brandRepositoryImpl struct {
	db *database.DB
}

func NewBrandRepository(db *database.DB) brand.BrandRepository {
	return &brandRepositoryImpl{db: db}
}

func scanBrand(row pgx.Row) (brand.Brand, error) {
	var b brand.Brand
	err := row.Scan(&b.ID, &b.Name, &b.VerticalID, &b.CreatedAt, &b.UpdatedAt, &b.VerticalName, &b.DivisionID, &b.DivisionName)
	return b, err
}

func brandWriteErr(err error, action string) error {
	if IsForeignKeyViolation(err) {
		return master.MissingRef("vertical_id")
	}
	return singleRowErr(err, action)
}

// Create implements brand.BrandRepository.
func (r *brandRepositoryImpl) Create(ctx context.Context, b brand.Brand) (brand.Brand, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return brand.Brand{}, err
	}

	query := `
		WITH b AS (
			INSERT INTO brands (id, name, vertical_id)
			VALUES ($1, $2, $3)
			RETURNING *
		)
		SELECT ` + brandColumns + ` FROM b` + brandJoins

	created, err := scanBrand(q.QueryRow(ctx, query, id, b.Name, b.VerticalID))
	if err != nil {
		return brand.Brand{}, brandWriteErr(err, "create brand")
	}
	return created, nil
}

// GetByID implements brand.BrandRepository.
func (r *brandRepositoryImpl) GetByID(ctx context.Context, id string) (brand.Brand, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBrand(q.QueryRow(ctx, `SELECT `+brandColumns+` FROM brands b`+brandJoins+` WHERE b.id = $1`, id))
	if err != nil {
		return brand.Brand{}, singleRowErr(err, "get brand")
	}
	return b, nil
}

// Update implements brand.BrandRepository.
func (r *brandRepositoryImpl) Update(ctx context.Context, b brand.Brand) (brand.Brand, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH b AS (
			UPDATE brands
			SET name = $2, vertical_id = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + brandColumns + ` FROM b` + brandJoins

	updated, err := scanBrand(q.QueryRow(ctx, query, b.ID, b.Name, b.VerticalID))
	if err != nil {
		return brand.Brand{}, brandWriteErr(err, "update brand")
	}
	return updated, nil
}

// Delete implements brand.BrandRepository.
func (r *brandRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "brands", id, brand.ErrBrandStillInUse)
}

// List implements brand.BrandRepository.
func (r *brandRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]brand.Brand, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("b.name", filter.Name)
	lq.addEquals("b.vertical_id", filter.VerticalID)
	lq.addEquals("v.division_id", filter.DivisionID)

	total, err := lq.count(ctx, q, "brands b JOIN verticals v ON v.id = b.vertical_id")
	if err != nil {
		return nil, 0, singleRowErr(err, "count brands")
	}

	query := `SELECT ` + brandColumns + ` FROM brands b` + brandJoins + lq.whereClause() + lq.page("b", filter)
	rows, err := q.Query(ctx, query, lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list brands")
	}
	defer rows.Close()

	brands := make([]brand.Brand, 0)
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan brand")
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate brands")
	}
	return brands, total, nil
}

// Lookup implements brand.BrandRepository.
func (r *brandRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	return lookupAll(ctx, GetQuerier(ctx, r.db), "brands")
}

// Search implements brand.BrandRepository.
func (r *brandRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	return searchByName(ctx, GetQuerier(ctx, r.db), "brands", term, limit, offset)
}

// Exists implements brand.BrandRepository.
func (r *brandRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "brands", id)
}
