package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
)

func (s *masterServiceImpl) ListDivisions(ctx context.Context, filter master.ListFilter) (division.ListDivisionResponse, error) {
	if err := filter.Validate(); err != nil {
		return division.ListDivisionResponse{}, err
	}

	divisions, total, err := s.divisionRepo.List(ctx, filter)
	if err != nil {
		return division.ListDivisionResponse{}, err
	}

	responses := make([]division.DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		responses = append(responses, division.NewDivisionResponse(d))
	}

	return division.ListDivisionResponse{
		ListMeta:  master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Divisions: responses,
	}, nil
}

func (s *masterServiceImpl) AllDivisions(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, divisionsAllKey, s.divisionRepo.Lookup)
}

func (s *masterServiceImpl) SearchDivisions(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.divisionRepo.Search)
}

func (s *masterServiceImpl) GetDivision(ctx context.Context, id string) (division.DivisionResponse, error) {
	d, err := s.divisionRepo.GetByID(ctx, id)
	if err != nil {
		return division.DivisionResponse{}, notFound(err, division.ErrDivisionNotFound)
	}
	return division.NewDivisionResponse(d), nil
}

func (s *masterServiceImpl) CreateDivision(ctx context.Context, req division.UpsertDivisionRequest) (division.DivisionResponse, error) {
	if err := req.Validate(); err != nil {
		return division.DivisionResponse{}, err
	}

	created, err := s.divisionRepo.Create(ctx, division.Division{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
	if err != nil {
		return division.DivisionResponse{}, err
	}

	s.lookups.Invalidate(divisionsAllKey)
	return division.NewDivisionResponse(created), nil
}

func (s *masterServiceImpl) UpdateDivision(ctx context.Context, id string, req division.UpsertDivisionRequest) (division.DivisionResponse, error) {
	if err := req.Validate(); err != nil {
		return division.DivisionResponse{}, err
	}

	updated, err := s.divisionRepo.Update(ctx, division.Division{
		ID:           id,
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
	})
	if err != nil {
		return division.DivisionResponse{}, notFound(err, division.ErrDivisionNotFound)
	}

	s.lookups.Invalidate(divisionsAllKey)
	return division.NewDivisionResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDivision(ctx context.Context, id string) error {
	if err := s.divisionRepo.Delete(ctx, id); err != nil {
		return notFound(err, division.ErrDivisionNotFound)
	}
	s.lookups.Invalidate(divisionsAllKey)
	return nil
}
