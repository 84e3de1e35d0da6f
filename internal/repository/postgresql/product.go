package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const productColumns = `
	p.id, p.name, p.brand_id, p.unit_id, p.price::float8, p.is_featured, p.is_active,
	p.created_at, p.updated_at,
	b.name, u.name, v.id, v.name, d.id, d.name`

const productJoins = `
	JOIN brands b ON b.id = p.brand_id
	JOIN units u ON u.id = p.unit_id
	JOIN verticals v ON v.id = b.vertical_id
	JOIN divisions d ON d.id = v.division_id`

type productRepositoryImpl struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.BrandID, &p.UnitID, &p.Price, &p.IsFeatured, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
		&p.BrandName, &p.UnitName, &p.VerticalID, &p.VerticalName, &p.DivisionID, &p.DivisionName,
	)
	return p, err
}

func productWriteErr(err error, action string) error {
	switch {
	case isPgError(err, codeForeignKeyViolation, "products_unit_id_fkey"):
		return master.MissingRef("unit_id")
	case IsForeignKeyViolation(err):
		return master.MissingRef("brand_id")
	}
	return singleRowErr(err, action)
}

// Create implements product.ProductRepository.
func (r *productRepositoryImpl) Create(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return product.Product{}, err
	}

	query := `
		WITH p AS (
			INSERT INTO products (id, name, brand_id, unit_id, price, is_featured, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT ` + productColumns + ` FROM p` + productJoins

	created, err := scanProduct(q.QueryRow(ctx, query, id, p.Name, p.BrandID, p.UnitID, p.Price, p.IsFeatured, p.IsActive))
	if err != nil {
		return product.Product{}, productWriteErr(err, "create product")
	}
	return created, nil
}

// GetByID implements product.ProductRepository.
func (r *productRepositoryImpl) GetByID(ctx context.Context, id string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p`+productJoins+` WHERE p.id = $1`, id))
	if err != nil {
		return product.Product{}, singleRowErr(err, "get product")
	}
	return p, nil
}

// GetByIDs implements product.ProductRepository. Missing ids are left out of the result.
func (r *productRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products p`+productJoins+` WHERE p.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, singleRowErr(err, "get products")
	}
	defer rows.Close()

	products := make([]product.Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, singleRowErr(err, "scan product")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update implements product.ProductRepository.
func (r *productRepositoryImpl) Update(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH p AS (
			UPDATE products
			SET name = $2, brand_id = $3, unit_id = $4, price = $5,
				is_featured = $6, is_active = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + productColumns + ` FROM p` + productJoins

	updated, err := scanProduct(q.QueryRow(ctx, query, p.ID, p.Name, p.BrandID, p.UnitID, p.Price, p.IsFeatured, p.IsActive))
	if err != nil {
		return product.Product{}, productWriteErr(err, "update product")
	}
	return updated, nil
}

// Delete implements product.ProductRepository.
func (r *productRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "products", id, product.ErrProductStillInUse)
}

// List implements product.ProductRepository.
func (r *productRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]product.Product, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("p.name", filter.Name)
	lq.addEquals("p.brand_id", filter.BrandID)
	lq.addEquals("p.unit_id", filter.UnitID)
	lq.addEquals("b.vertical_id", filter.VerticalID)
	lq.addEquals("v.division_id", filter.DivisionID)

	total, err := lq.count(ctx, q, "products p"+productJoins)
	if err != nil {
		return nil, 0, singleRowErr(err, "count products")
	}

	query := `SELECT ` + productColumns + ` FROM products p` + productJoins + lq.whereClause() + lq.page("p", filter)
	rows, err := q.Query(ctx, query, lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list products")
	}
	defer rows.Close()

	products := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate products")
	}
	return products, total, nil
}

// Lookup implements product.ProductRepository. Only active products are offered.
func (r *productRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	items, err := queryLookupItems(ctx, GetQuerier(ctx, r.db),
		`SELECT id, name FROM products WHERE is_active ORDER BY is_featured DESC, name, id`)
	if err != nil {
		return nil, singleRowErr(err, "look up products")
	}
	return items, nil
}

// Search implements product.ProductRepository.
func (r *productRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	items, err := queryLookupItems(ctx, GetQuerier(ctx, r.db),
		`SELECT id, name FROM products WHERE is_active AND name ILIKE $1 ORDER BY name, id LIMIT $2 OFFSET $3`,
		containsPattern(term), limit, offset)
	if err != nil {
		return nil, singleRowErr(err, "search products")
	}
	return items, nil
}

// Exists implements product.ProductRepository.
func (r *productRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "products", id)
}
