package product

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type ProductRepository interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Product, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
