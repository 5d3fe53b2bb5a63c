package booktag

import (
	"context"

	"booker-backend/internal/shared/criteria"
)

type Service interface {
	Create(ctx context.Context, req *Request) (*BookTag, error)
	Get(ctx context.Context, id int64) (*BookTag, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookTag, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, id int64, req *Request) (*BookTag, error)
	Patch(ctx context.Context, id int64, patch *Patch) (*BookTag, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req *Request) (*BookTag, error) {
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *service) Get(ctx context.Context, id int64) (*BookTag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookTag, int64, error) {
	items, err := s.repo.List(ctx, crit, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, crit)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *service) Count(ctx context.Context, crit *Criteria) (int64, error) {
	return s.repo.Count(ctx, crit)
}

func (s *service) Replace(ctx context.Context, id int64, req *Request) (*BookTag, error) {
	e := req.ToEntity()
	e.ID = id
	return s.repo.Update(ctx, e)
}

func (s *service) Patch(ctx context.Context, id int64, patch *Patch) (*BookTag, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.Apply(patch)

	return s.repo.Update(ctx, e)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
