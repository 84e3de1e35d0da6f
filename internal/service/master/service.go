package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/brand"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/unit"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/vertical"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/cache"
	"github.com/jackc/pgx/v5"
)

// Cache keys for the unpaginated lookup lists.
const (
	divisionsAllKey = "divisions:all"
	verticalsAllKey = "verticals:all"
	brandsAllKey    = "brands:all"
	unitsAllKey     = "units:all"
	productsAllKey  = "products:all"
	outletsAllKey   = "outlets:all"
)

type MasterService interface {
	// Division operations
	ListDivisions(ctx context.Context, filter master.ListFilter) (division.ListDivisionResponse, error)
	AllDivisions(ctx context.Context) ([]master.LookupItem, error)
	SearchDivisions(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetDivision(ctx context.Context, id string) (division.DivisionResponse, error)
	CreateDivision(ctx context.Context, req division.UpsertDivisionRequest) (division.DivisionResponse, error)
	UpdateDivision(ctx context.Context, id string, req division.UpsertDivisionRequest) (division.DivisionResponse, error)
	DeleteDivision(ctx context.Context, id string) error

	// Vertical operations
	ListVerticals(ctx context.Context, filter master.ListFilter) (vertical.ListVerticalResponse, error)
	AllVerticals(ctx context.Context) ([]master.LookupItem, error)
	SearchVerticals(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetVertical(ctx context.Context, id string) (vertical.VerticalResponse, error)
	CreateVertical(ctx context.Context, req vertical.UpsertVerticalRequest) (vertical.VerticalResponse, error)
	UpdateVertical(ctx context.Context, id string, req vertical.UpsertVerticalRequest) (vertical.VerticalResponse, error)
	DeleteVertical(ctx context.Context, id string) error

	// Brand operations
	ListBrands(ctx context.Context, filter master.ListFilter) (brand.ListBrandResponse, error)
	AllBrands(ctx context.Context) ([]master.LookupItem, error)
	SearchBrands(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetBrand(ctx context.Context, id string) (brand.BrandResponse, error)
	CreateBrand(ctx context.Context, req brand.UpsertBrandRequest) (brand.BrandResponse, error)
	UpdateBrand(ctx context.Context, id string, req brand.UpsertBrandRequest) (brand.BrandResponse, error)
	DeleteBrand(ctx context.Context, id string) error

	// Unit operations
	ListUnits(ctx context.Context, filter master.ListFilter) (unit.ListUnitResponse, error)
	AllUnits(ctx context.Context) ([]master.LookupItem, error)
	SearchUnits(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetUnit(ctx context.Context, id string) (unit.UnitResponse, error)
	CreateUnit(ctx context.Context, req unit.UpsertUnitRequest) (unit.UnitResponse, error)
	UpdateUnit(ctx context.Context, id string, req unit.UpsertUnitRequest) (unit.UnitResponse, error)
	DeleteUnit(ctx context.Context, id string) error

	// Product operations
	ListProducts(ctx context.Context, filter master.ListFilter) (product.ListProductResponse, error)
	AllProducts(ctx context.Context) ([]master.LookupItem, error)
	SearchProducts(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetProduct(ctx context.Context, id string) (product.ProductResponse, error)
	CreateProduct(ctx context.Context, req product.UpsertProductRequest) (product.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req product.UpsertProductRequest) (product.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error

	// Outlet operations
	ListOutlets(ctx context.Context, filter master.ListFilter) (outlet.ListOutletResponse, error)
	AllOutlets(ctx context.Context) ([]master.LookupItem, error)
	SearchOutlets(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error)
	GetOutlet(ctx context.Context, id string) (outlet.OutletResponse, error)
	CreateOutlet(ctx context.Context, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error)
	UpdateOutlet(ctx context.Context, id string, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error)
	DeleteOutlet(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	divisionRepo division.DivisionRepository
	verticalRepo vertical.VerticalRepository
	brandRepo    brand.BrandRepository
	unitRepo     unit.UnitRepository
	productRepo  product.ProductRepository
	outletRepo   outlet.OutletRepository
	lookups      *cache.LookupCache
}

func NewMasterService(
	divisionRepo division.DivisionRepository,
	verticalRepo vertical.VerticalRepository,
	brandRepo brand.BrandRepository,
	unitRepo unit.UnitRepository,
	productRepo product.ProductRepository,
	outletRepo outlet.OutletRepository,
	lookups *cache.LookupCache,
) MasterService {
	return &masterServiceImpl{
		divisionRepo: divisionRepo,
		verticalRepo: verticalRepo,
		brandRepo:    brandRepo,
		unitRepo:     unitRepo,
		productRepo:  productRepo,
		outletRepo:   outletRepo,
		lookups:      lookups,
	}
}

// cachedLookup serves an "all" list from the lookup cache.
func (s *masterServiceImpl) cachedLookup(ctx context.Context, key string, load func(ctx context.Context) ([]master.LookupItem, error)) ([]master.LookupItem, error) {
	v, err := s.lookups.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []master.LookupItem{}
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return v.([]master.LookupItem), nil
}

func searchPage(ctx context.Context, filter master.SearchFilter, search func(ctx context.Context, term string, limit int, offset int) ([]master.LookupItem, error)) (master.SearchResponse, error) {
	if err := filter.Validate(); err != nil {
		return master.SearchResponse{}, err
	}

	// one extra row tells whether another page exists
	items, err := search(ctx, filter.Term, master.SearchPageSize+1, filter.Offset())
	if err != nil {
		return master.SearchResponse{}, err
	}
	return master.NewSearchResponse(items, filter.Page), nil
}

// requireRef turns a missing parent row into a field validation error.
func requireRef(ctx context.Context, field string, id string, exists func(ctx context.Context, id string) (bool, error)) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
	}
	if !ok {
		return master.MissingRef(field)
	}
	return nil
}

// notFound maps pgx.ErrNoRows to the entity's not-found error.
func notFound(err error, target error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return target
	}
	return err
}
