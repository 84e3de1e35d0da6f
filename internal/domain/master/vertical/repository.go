package vertical

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type VerticalRepository interface {
	Create(ctx context.Context, vertical Vertical) (Vertical, error)
	GetByID(ctx context.Context, id string) (Vertical, error)
	Update(ctx context.Context, vertical Vertical) (Vertical, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Vertical, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
