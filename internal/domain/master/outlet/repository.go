package outlet

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type OutletRepository interface {
	Create(ctx context.Context, outlet Outlet) (Outlet, error)
	GetByID(ctx context.Context, id string) (Outlet, error)
	Update(ctx context.Context, outlet Outlet) (Outlet, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Outlet, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
