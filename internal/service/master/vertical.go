package master

import (
	"context"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/vertical"
)

func (s *masterServiceImpl) ListVerticals(ctx context.Context, filter master.ListFilter) (vertical.ListVerticalResponse, error) {
	if err := filter.Validate(); err != nil {
		return vertical.ListVerticalResponse{}, err
	}

	verticals, total, err := s.verticalRepo.List(ctx, filter)
	if err != nil {
		return vertical.ListVerticalResponse{}, err
	}

	responses := make([]vertical.VerticalResponse, 0, len(verticals))
	for _, v := range verticals {
		responses = append(responses, vertical.NewVerticalResponse(v))
	}

	return vertical.ListVerticalResponse{
		ListMeta:  master.NewListMeta(total, filter.Page, filter.Limit, len(responses)),
		Verticals: responses,
	}, nil
}

func (s *masterServiceImpl) AllVerticals(ctx context.Context) ([]master.LookupItem, error) {
	return s.cachedLookup(ctx, verticalsAllKey, s.verticalRepo.Lookup)
}

func (s *masterServiceImpl) SearchVerticals(ctx context.Context, filter master.SearchFilter) (master.SearchResponse, error) {
	return searchPage(ctx, filter, s.verticalRepo.Search)
}

func (s *masterServiceImpl) GetVertical(ctx context.Context, id string) (vertical.VerticalResponse, error) {
	v, err := s.verticalRepo.GetByID(ctx, id)
	if err != nil {
		return vertical.VerticalResponse{}, notFound(err, vertical.ErrVerticalNotFound)
	}
	return vertical.NewVerticalResponse(v), nil
}

func (s *masterServiceImpl) CreateVertical(ctx context.Context, req vertical.UpsertVerticalRequest) (vertical.VerticalResponse, error) {
	if err := req.Validate(); err != nil {
		return vertical.VerticalResponse{}, err
	}
	if err := requireRef(ctx, "division_id", req.DivisionID, s.divisionRepo.Exists); err != nil {
		return vertical.VerticalResponse{}, err
	}

	created, err := s.verticalRepo.Create(ctx, vertical.Vertical{
		Name:       req.Name,
		DivisionID: req.DivisionID,
	})
	if err != nil {
		return vertical.VerticalResponse{}, err
	}

	s.lookups.Invalidate(verticalsAllKey)
	return vertical.NewVerticalResponse(created), nil
}

func (s *masterServiceImpl) UpdateVertical(ctx context.Context, id string, req vertical.UpsertVerticalRequest) (vertical.VerticalResponse, error) {
	if err := req.Validate(); err != nil {
		return vertical.VerticalResponse{}, err
	}
	if err := requireRef(ctx, "division_id", req.DivisionID, s.divisionRepo.Exists); err != nil {
		return vertical.VerticalResponse{}, err
	}

	updated, err := s.verticalRepo.Update(ctx, vertical.Vertical{
		ID:         id,
		Name:       req.Name,
		DivisionID: req.DivisionID,
	})
	if err != nil {
		return vertical.VerticalResponse{}, notFound(err, vertical.ErrVerticalNotFound)
	}

	s.lookups.Invalidate(verticalsAllKey)
	return vertical.NewVerticalResponse(updated), nil
}

func (s *masterServiceImpl) DeleteVertical(ctx context.Context, id string) error {
	if err := s.verticalRepo.Delete(ctx, id); err != nil {
		return notFound(err, vertical.ErrVerticalNotFound)
	}
	s.lookups.Invalidate(verticalsAllKey)
	return nil
}
