package division

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type DivisionRepository interface {
	Create(ctx context.Context, division Division) (Division, error)
	GetByID(ctx context.Context, id string) (Division, error)
	Update(ctx context.Context, division Division) (Division, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Division, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
