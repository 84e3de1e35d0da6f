package unit

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
)

type UnitRepository interface {
	Create(ctx context.Context, unit Unit) (Unit, error)
	GetByID(ctx context.Context, id string) (Unit, error)
	Update(ctx context.Context, unit Unit) (Unit, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter master.ListFilter) ([]Unit, int64, error)
	Lookup(ctx context.Context) ([]master.LookupItem, error)
	Search(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)
	Exists(ctx context.Context, id string) (bool, error)
}
