package bookcollection

import (
	"context"
	"errors"

	"booker-backend/internal/domains/collection"
	"booker-backend/internal/infrastructure/queue"
	"booker-backend/internal/shared"
	"booker-backend/internal/shared/criteria"
)

type Service interface {
	Create(ctx context.Context, actor shared.Actor, req *Request) (*BookCollection, error)
	Get(ctx context.Context, id int64) (*BookCollection, error)
	List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookCollection, int64, error)
	Count(ctx context.Context, crit *Criteria) (int64, error)
	Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*BookCollection, error)
	Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*BookCollection, error)
	Delete(ctx context.Context, actor shared.Actor, id int64) error
}

type service struct {
	repo        Repository
	collections collection.Repository
	queue       queue.Enqueuer
}

func NewService(repo Repository, collections collection.Repository, q queue.Enqueuer) Service {
	return &service{repo: repo, collections: collections, queue: q}
}

// checkOwner verifies the actor may modify the target collection. A missing
// collection surfaces as an invalid reference before the insert even runs.
func (s *service) checkOwner(ctx context.Context, actor shared.Actor, collectionID int64) error {
	col, err := s.collections.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			return ErrInvalidReference
		}
		return err
	}
	if !actor.Admin && col.UserID != actor.UserID {
		return ErrNotOwned
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor shared.Actor, req *Request) (*BookCollection, error) {
	if err := s.checkOwner(ctx, actor, req.CollectionID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, err
	}

	s.queue.EnqueueCollectionCount(ctx, created.CollectionID)

	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*BookCollection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, crit *Criteria, page criteria.Pageable) ([]BookCollection, int64, error) {
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

func (s *service) Replace(ctx context.Context, actor shared.Actor, id int64, req *Request) (*BookCollection, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, actor, existing.CollectionID); err != nil {
		return nil, err
	}
	if req.CollectionID != existing.CollectionID {
		if err := s.checkOwner(ctx, actor, req.CollectionID); err != nil {
			return nil, err
		}
	}

	e := req.ToEntity()
	e.ID = id

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}

	s.notifyCollections(ctx, existing.CollectionID, updated.CollectionID)

	return updated, nil
}

func (s *service) Patch(ctx context.Context, actor shared.Actor, id int64, patch *Patch) (*BookCollection, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, actor, e.CollectionID); err != nil {
		return nil, err
	}

	oldCollectionID := e.CollectionID
	e.Apply(patch)
	if e.CollectionID != oldCollectionID {
		if err := s.checkOwner(ctx, actor, e.CollectionID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}

	s.notifyCollections(ctx, oldCollectionID, updated.CollectionID)

	return updated, nil
}

// Delete is idempotent toward absent ids but still refuses to touch a
// collection the actor does not own.
func (s *service) Delete(ctx context.Context, actor shared.Actor, id int64) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.checkOwner(ctx, actor, e.CollectionID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.queue.EnqueueCollectionCount(ctx, e.CollectionID)

	return nil
}

// notifyCollections schedules a count recompute for every collection touched
// by a write. When the link moved between collections both sides need it.
func (s *service) notifyCollections(ctx context.Context, oldID, newID int64) {
	s.queue.EnqueueCollectionCount(ctx, newID)
	if oldID != newID {
		s.queue.EnqueueCollectionCount(ctx, oldID)
	}
}
