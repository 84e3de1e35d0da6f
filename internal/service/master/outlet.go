package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
)

func (s *masterServiceImpl) ListOutlets(ctx context.Context, filter master.ListFilter) (outlet.ListOutletResponse, error) {
	if err := filter.Validate(); err != nil {
		return outlet.ListOutletResponse{}, err
	}

	outlets, total, err := s.outletRepo.List(ctx, filter)
	if err != nil {
		return outlet.ListOutletResponse{}, err
	}

	responses := make([]outlet.OutletResponse, 0, len(outlets))
	for _, o := range outlets {
		responses = append(responses, outlet.NewOutletResponse(o))
	}

	return outlet.ListOutletResponse{
		ListMeta: master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Outlets:  responses,
	}, nil
}

func (s *masterServiceImpl) AllOutlets(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, outletsAllKey, s.outletRepo.Lookup)
}

func (s *masterServiceImpl) SearchOutlets(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.outletRepo.Search)
}

func (s *masterServiceImpl) GetOutlet(ctx context.Context, id string) (outlet.OutletResponse, error) {
	o, err := s.outletRepo.GetByID(ctx, id)
	if err != nil {
		return outlet.OutletResponse{}, notFound(err, outlet.ErrOutletNotFound)
	}
	return outlet.NewOutletResponse(o), nil
}

func outletFromRequest(id string, req outlet.UpsertOutletRequest) outlet.Outlet {
	return outlet.Outlet{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		OwnerEmail:  req.OwnerEmail,
		OwnerPhone:  req.OwnerPhone,
		OutletPhone: req.OutletPhone,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	}
}

func (s *masterServiceImpl) CreateOutlet(ctx context.Context, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error) {
	if err := req.Validate(); err != nil {
		return outlet.OutletResponse{}, err
	}

	created, err := s.outletRepo.Create(ctx, outletFromRequest("", req))
	if err != nil {
		return outlet.OutletResponse{}, err
	}

	s.lookups.Invalidate(outletsAllKey)
	return outlet.NewOutletResponse(created), nil
}

func (s *masterServiceImpl) UpdateOutlet(ctx context.Context, id string, req outlet.UpsertOutletRequest) (outlet.OutletResponse, error) {
	if err := req.Validate(); err != nil {
		return outlet.OutletResponse{}, err
	}

	updated, err := s.outletRepo.Update(ctx, outletFromRequest(id, req))
	if err != nil {
		return outlet.OutletResponse{}, notFound(err, outlet.ErrOutletNotFound)
	}

	s.lookups.Invalidate(outletsAllKey)
	return outlet.NewOutletResponse(updated), nil
}

func (s *masterServiceImpl) DeleteOutlet(ctx context.Context, id string) error {
	if err := s.outletRepo.Delete(ctx, id); err != nil {
		return notFound(err, outlet.ErrOutletNotFound)
	}
	s.lookups.Invalidate(outletsAllKey)
	return nil
}
