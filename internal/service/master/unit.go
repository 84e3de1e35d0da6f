package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/unit"
)

func (s *masterServiceImpl) ListUnits(ctx context.Context, filter master.ListFilter) (unit.ListUnitResponse, error) {
	if err := filter.Validate(); err != nil {
		return unit.ListUnitResponse{}, err
	}

	units, total, err := s.unitRepo.List(ctx, filter)
	if err != nil {
		return unit.ListUnitResponse{}, err
	}

	responses := make([]unit.UnitResponse, 0, len(units))
	for _, u := range units {
		responses = append(responses, unit.NewUnitResponse(u))
	}

	return unit.ListUnitResponse{
		ListMeta: master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Units:    responses,
	}, nil
}

func (s *masterServiceImpl) AllUnits(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, unitsAllKey, s.unitRepo.Lookup)
}

func (s *masterServiceImpl) SearchUnits(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.unitRepo.Search)
}

func (s *masterServiceImpl) GetUnit(ctx context.Context, id string) (unit.UnitResponse, error) {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return unit.UnitResponse{}, notFound(err, unit.ErrUnitNotFound)
	}
	return unit.NewUnitResponse(u), nil
}

func (s *masterServiceImpl) CreateUnit(ctx context.Context, req unit.UpsertUnitRequest) (unit.UnitResponse, error) {
	if err := req.Validate(); err != nil {
		return unit.UnitResponse{}, err
	}

	created, err := s.unitRepo.Create(ctx, unit.Unit{Name: req.Name})
	if err != nil {
		return unit.UnitResponse{}, err
	}

	s.lookups.Invalidate(unitsAllKey)
	return unit.NewUnitResponse(created), nil
}

func (s *masterServiceImpl) UpdateUnit(ctx context.Context, id string, req unit.UpsertUnitRequest) (unit.UnitResponse, error) {
	if err := req.Validate(); err != nil {
		return unit.UnitResponse{}, err
	}

	updated, err := s.unitRepo.Update(ctx, unit.Unit{ID: id, Name: req.Name})
	if err != nil {
		return unit.UnitResponse{}, notFound(err, unit.ErrUnitNotFound)
	}

	s.lookups.Invalidate(unitsAllKey)
	return unit.NewUnitResponse(updated), nil
}

func (s *masterServiceImpl) DeleteUnit(ctx context.Context, id string) error {
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return notFound(err, unit.ErrUnitNotFound)
	}
	s.lookups.Invalidate(unitsAllKey)
	return nil
}
