package book

import (
	"context"

	"booker-backend/internal/shared/criteria"
)

// Service is the business logic contract for books.
type Service interface {
	Create(ctx context.Context, req *Request) (*Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Book, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, id int64, req *Request) (*Book, error)
	Patch(ctx context.Context, id int64, patch *Patch) (*Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req *Request) (*Book, error) {
	return s.repo.Create(ctx, req.ToEntity())
}

func (s *service) Get(ctx context.Context, id int64) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the page plus the total matching the same criteria, so
// pagination metadata stays consistent with the filter.
func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Book, int64, error) {
	books, err := s.repo.List(ctx, crit, page)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, crit)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (s *service) Count(ctx context.Context, crit *Criteria) (int64, error) {
	return s.repo.Count(ctx, crit)
}

func (s *service) Replace(ctx context.Context, id int64, req *Request) (*Book, error) {
	b := req.ToEntity()
	b.ID = id
	return s.repo.Update(ctx, b)
}

func (s *service) Patch(ctx context.Context, id int64, patch *Patch) (*Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Apply(patch)

	return s.repo.Update(ctx, b)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
