package brand

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type BrandRepository interface {
	Create(ctx context.Context, brand Brand) (Brand, error)
	GetByID(ctx context.Context, id string) (Brand, error)
	Update(ctx context.Context, brand Brand) (Brand, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Brand, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
