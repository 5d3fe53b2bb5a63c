package collection

import (
	"context"

	"booker-backend/internal/shared"
	"booker-backend/internal/shared/criteria"
)

type Service interface {
	Create(ctx context.Context, actor shared.Actor, req *Request) (*Collection, error)
	Get(ctx context.Context, actor shared.Actor, id int64) (*Collection, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Collection, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*Collection, error)
	Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*Collection, error)
	Delete(ctx context.Context, actor shared.Actor, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, actor shared.Actor, req *Request) (*Collection, error) {
	e := req.ToEntity()
	e.UserID = actor.UserID
	return s.repo.Create(ctx, e)
}

// Get hides other users' rows from non-admin callers.
func (s *service) Get(ctx context.Context, actor shared.Actor, id int64) (*Collection, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && e.UserID != actor.UserID {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Collection, int64, error) {
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

func (s *service) Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*Collection, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && existing.UserID != actor.UserID {
		return nil, ErrNotOwned
	}

	e := req.ToEntity()
	e.ID = id
	e.UserID = existing.UserID // owner never changes

	return s.repo.Update(ctx, e)
}

func (s *service) Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*Collection, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && e.UserID != actor.UserID {
		return nil, ErrNotOwned
	}

	e.Apply(patch)

	return s.repo.Update(ctx, e)
}

// Delete is idempotent toward absent ids but still refuses to remove
// another user's row.
func (s *service) Delete(ctx context.Context, actor shared.Actor, id int64) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}
	if !actor.Admin && e.UserID != actor.UserID {
		return ErrNotOwned
	}

	return s.repo.Delete(ctx, id)
}
