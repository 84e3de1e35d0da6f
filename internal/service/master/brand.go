package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/brand"
)

func (s *masterServiceImpl) ListBrands(ctx context.Context, filter master.ListFilter) (brand.ListBrandResponse, error) {
	if err := filter.Validate(); err != nil {
		return brand.ListBrandResponse{}, err
	}

	brands, total, err := s.brandRepo.List(ctx, filter)
	if err != nil {
		return brand.ListBrandResponse{}, err
	}

	responses := make([]brand.BrandResponse, 0, len(brands))
	for _, b := range brands {
		responses = append(responses, brand.NewBrandResponse(b))
	}

	return brand.ListBrandResponse{
		ListMeta: master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Brands:   responses,
	}, nil
}

func (s *masterServiceImpl) AllBrands(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, brandsAllKey, s.brandRepo.Lookup)
}

func (s *masterServiceImpl) SearchBrands(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.brandRepo.Search)
}

func (s *masterServiceImpl) GetBrand(ctx context.Context, id string) (brand.BrandResponse, error) {
	b, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return brand.BrandResponse{}, notFound(err, brand.ErrBrandNotFound)
	}
	return brand.NewBrandResponse(b), nil
}

func (s *masterServiceImpl) CreateBrand(ctx context.Context, req brand.UpsertBrandRequest) (brand.BrandResponse, error) {
	if err := req.Validate(); err != nil {
		return brand.BrandResponse{}, err
	}
	if err := requireRef(ctx, "vertical_id", req.VerticalID, s.verticalRepo.Exists); err != nil {
		return brand.BrandResponse{}, err
	}

	created, err := s.brandRepo.Create(ctx, brand.Brand{
		Name:       req.Name,
		VerticalID: req.VerticalID,
	})
	if err != nil {
		return brand.BrandResponse{}, err
	}

	s.lookups.Invalidate(brandsAllKey)
	return brand.NewBrandResponse(created), nil
}

func (s *masterServiceImpl) UpdateBrand(ctx context.Context, id string, req brand.UpsertBrandRequest) (brand.BrandResponse, error) {
	if err := req.Validate(); err != nil {
		return brand.BrandResponse{}, err
	}
	if err := requireRef(ctx, "vertical_id", req.VerticalID, s.verticalRepo.Exists); err != nil {
		return brand.BrandResponse{}, err
	}

	updated, err := s.brandRepo.Update(ctx, brand.Brand{
		ID:         id,
		Name:       req.Name,
		VerticalID: req.VerticalID,
	})
	if err != nil {
		return brand.BrandResponse{}, notFound(err, brand.ErrBrandNotFound)
	}

	s.lookups.Invalidate(brandsAllKey)
	return brand.NewBrandResponse(updated), nil
}

func (s *masterServiceImpl) DeleteBrand(ctx context.Context, id string) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return notFound(err, brand.ErrBrandNotFound)
	}
	s.lookups.Invalidate(brandsAllKey)
	return nil
}
