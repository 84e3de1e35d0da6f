package postgresql

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const outletColumns = `
	o.id, o.name, o.address, o.owner_email, o.owner_phone, o.outlet_phone,
	o.latitude, o.longitude, o.created_at, o.updated_at`

type outletRepositoryImpl struct {
	db *database.DB
}

func NewOutletRepository(db *database.DB) outlet.OutletRepository {
	return &outletRepositoryImpl{db: db}
}

func scanOutlet(row pgx.Row) (outlet.Outlet, error) {
	var o outlet.Outlet
	err := row.Scan(
		&o.ID, &o.Name, &o.Address, &o.OwnerEmail, &o.OwnerPhone, &o.OutletPhone,
		&o.Latitude, &o.Longitude, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// Create implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Create(ctx context.Context, o outlet.Outlet) (outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return outlet.Outlet{}, err
	}

	query := `
		INSERT INTO outlets AS o (id, name, address, owner_email, owner_phone, outlet_phone, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + outletColumns

	created, err := scanOutlet(q.QueryRow(ctx, query,
		id, o.Name, o.Address, o.OwnerEmail, o.OwnerPhone, o.OutletPhone, o.Latitude, o.Longitude,
	))
	if err != nil {
		return outlet.Outlet{}, singleRowErr(err, "create outlet")
	}
	return created, nil
}

// GetByID implements outlet.OutletRepository.
func (r *outletRepositoryImpl) GetByID(ctx context.Context, id string) (outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	o, err := scanOutlet(q.QueryRow(ctx, `SELECT `+outletColumns+` FROM outlets o WHERE o.id = $1`, id))
	if err != nil {
		return outlet.Outlet{}, singleRowErr(err, "get outlet")
	}
	return o, nil
}

// Update implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Update(ctx context.Context, o outlet.Outlet) (outlet.Outlet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE outlets AS o
		SET name = $2, address = $3, owner_email = $4, owner_phone = $5, outlet_phone = $6,
			latitude = $7, longitude = $8, updated_at = NOW()
		WHERE o.id = $1
		RETURNING ` + outletColumns

	updated, err := scanOutlet(q.QueryRow(ctx, query,
		o.ID, o.Name, o.Address, o.OwnerEmail, o.OwnerPhone, o.OutletPhone, o.Latitude, o.Longitude,
	))
	if err != nil {
		return outlet.Outlet{}, singleRowErr(err, "update outlet")
	}
	return updated, nil
}

// Delete implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, GetQuerier(ctx, r.db), "outlets", id, outlet.ErrOutletStillInUse)
}

// List implements outlet.OutletRepository.
func (r *outletRepositoryImpl) List(ctx context.Context, filter master.ListFilter) ([]outlet.Outlet, int64, error) {
	q := GetQuerier(ctx, r.db)

	var lq listQuery
	lq.addContains("o.name", filter.Name)

	total, err := lq.count(ctx, q, "outlets o")
	if err != nil {
		return nil, 0, singleRowErr(err, "count outlets")
	}

	rows, err := q.Query(ctx, `SELECT `+outletColumns+` FROM outlets o`+lq.whereClause()+lq.page("o", filter), lq.args...)
	if err != nil {
		return nil, 0, singleRowErr(err, "list outlets")
	}
	defer rows.Close()

	outlets := make([]outlet.Outlet, 0)
	for rows.Next() {
		o, err := scanOutlet(rows)
		if err != nil {
			return nil, 0, singleRowErr(err, "scan outlet")
		}
		outlets = append(outlets, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, singleRowErr(err, "iterate outlets")
	}
	return outlets, total, nil
}

// Lookup implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Lookup(ctx context.Context) ([]master.LookupItem, error) {
	return lookupAll(ctx, GetQuerier(ctx, r.db), "outlets")
}

// Search implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error) {
	return searchByName(ctx, GetQuerier(ctx, r.db), "outlets", term, limit, offset)
}

// Exists implements outlet.OutletRepository.
func (r *outletRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return existsByID(ctx, GetQuerier(ctx, r.db), "outlets", id)
}
