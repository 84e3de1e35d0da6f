package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
)

func (s *masterServiceImpl) ListProducts(ctx context.Context, filter master.ListFilter) (product.ListProductResponse, error) {
	if err := filter.Validate(); err != nil {
		return product.ListProductResponse{}, err
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return product.ListProductResponse{}, err
	}

	responses := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, product.NewProductResponse(p))
	}

	return product.ListProductResponse{
		ListMeta: master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Products: responses,
	}, nil
}

// AllProducts lists active products only, featured ones first.
func (s *masterServiceImpl) AllProducts(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, productsAllKey, s.productRepo.Lookup)
}

func (s *masterServiceImpl) SearchProducts(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.productRepo.Search)
}

func (s *masterServiceImpl) GetProduct(ctx context.Context, id string) (product.ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return product.ProductResponse{}, notFound(err, product.ErrProductNotFound)
	}
	return product.NewProductResponse(p), nil
}

func (s *masterServiceImpl) checkProductRefs(ctx context.Context, req product.UpsertProductRequest) error {
	if err := requireRef(ctx, "brand_id", req.BrandID, s.brandRepo.Exists); err != nil {
		return err
	}
	return requireRef(ctx, "unit_id", req.UnitID, s.unitRepo.Exists)
}

func (s *masterServiceImpl) CreateProduct(ctx context.Context, req product.UpsertProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}
	if err := s.checkProductRefs(ctx, req); err != nil {
		return product.ProductResponse{}, err
	}

	created, err := s.productRepo.Create(ctx, product.Product{
		Name:       req.Name,
		BrandID:    req.BrandID,
		UnitID:     req.UnitID,
		Price:      *req.Price,
		IsFeatured: req.IsFeatured,
		IsActive:   req.Active(),
	})
	if err != nil {
		return product.ProductResponse{}, err
	}

	s.lookups.Invalidate(productsAllKey)
	return product.NewProductResponse(created), nil
}

func (s *masterServiceImpl) UpdateProduct(ctx context.Context, id string, req product.UpsertProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}
	if err := s.checkProductRefs(ctx, req); err != nil {
		return product.ProductResponse{}, err
	}

	updated, err := s.productRepo.Update(ctx, product.Product{
		ID:         id,
		Name:       req.Name,
		BrandID:    req.BrandID,
		UnitID:     req.UnitID,
		Price:      *req.Price,
		IsFeatured: req.IsFeatured,
		IsActive:   req.Active(),
	})
	if err != nil {
		return product.ProductResponse{}, notFound(err, product.ErrProductNotFound)
	}

	s.lookups.Invalidate(productsAllKey)
	return product.NewProductResponse(updated), nil
}

func (s *masterServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return notFound(err, product.ErrProductNotFound)
	}
	s.lookups.Invalidate(productsAllKey)
	return nil
}
