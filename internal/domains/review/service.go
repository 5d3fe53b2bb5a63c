package review

import (
	"context"

	"booker-backend/internal/infrastructure/queue"
	"booker-backend/internal/shared"
	"booker-backend/internal/shared/criteria"
)

type Service interface {
	Create(ctx context.Context, actor shared.Actor, req *Request) (*Review, error)
	Get(ctx context.Context, actor shared.Actor, id int64) (*Review, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Review, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*Review, error)
	Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*Review, error)
	Delete(ctx context.Context, actor shared.Actor, id int64) error
}

type service struct {
	repo  Repository
	queue queue.Enqueuer
}

func NewService(repo Repository, q queue.Enqueuer) Service {
	return &service{repo: repo, queue: q}
}

func (s *service) Create(ctx context.Context, actor shared.Actor, req *Request) (*Review, error) {
	e := req.ToEntity()
	e.UserID = actor.UserID

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.queue.EnqueueBookStats(ctx, created.BookID)

	return created, nil
}

// Get hides other users' rows from non-admin callers.
func (s *service) Get(ctx context.Context, actor shared.Actor, id int64) (*Review, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && e.UserID != actor.UserID {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]Review, int64, error) {
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

func (s *service) Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*Review, error) {
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

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}

	s.notifyBooks(ctx, existing.BookID, updated.BookID)

	return updated, nil
}

func (s *service) Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*Review, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && e.UserID != actor.UserID {
		return nil, ErrNotOwned
	}

	oldBookID := e.BookID
	e.Apply(patch)

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}

	s.notifyBooks(ctx, oldBookID, updated.BookID)

	return updated, nil
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

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.queue.EnqueueBookStats(ctx, e.BookID)

	return nil
}

// notifyBooks schedules a stats recompute for every book touched by a
// write. When the review moved between books both sides need it.
func (s *service) notifyBooks(ctx context.Context, oldBookID, newBookID int64) {
	s.queue.EnqueueBookStats(ctx, newBookID)
	if oldBookID != newBookID {
		s.queue.EnqueueBookStats(ctx, oldBookID)
	}
}
