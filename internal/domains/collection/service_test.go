package collection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-backend/internal/shared"
	"booker-backend/internal/shared/criteria"
)

type fakeRepo struct {
	rows    map[int64]*Collection
	nextID  int64
	deleted []int64
}

func newFakeRepo(seed ...*Collection) *fakeRepo {
	r := &fakeRepo{rows: make(map[int64]*Collection), nextID: 1}
	for _, c := range seed {
		r.rows[c.ID] = c
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, e *Collection) (*Collection, error) {
	e.ID = r.nextID
	r.nextID++
	r.rows[e.ID] = e
	return e, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Collection, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ *Criteria, _ criteria.Pageable) ([]Collection, error) {
	var out []Collection
	for _, c := range r.rows {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context, _ *Criteria) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeRepo) Update(_ context.Context, e *Collection) (*Collection, error) {
	if _, ok := r.rows[e.ID]; !ok {
		return nil, ErrNotFound
	}
	r.rows[e.ID] = e
	return e, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var (
	owner    = shared.Actor{UserID: 1}
	stranger = shared.Actor{UserID: 2}
	admin    = shared.Actor{UserID: 3, Admin: true}
)

func seeded() (*fakeRepo, Service) {
	repo := newFakeRepo(&Collection{ID: 10, Name: "to read", UserID: owner.UserID})
	return repo, NewService(repo)
}

func TestCreate_StampsOwner(t *testing.T) {
	_, svc := seeded()

	created, err := svc.Create(context.Background(), stranger, &Request{Name: "favorites"})

	require.NoError(t, err)
	assert.Equal(t, stranger.UserID, created.UserID)
}

func TestGet_OwnerSeesRow(t *testing.T) {
	_, svc := seeded()

	got, err := svc.Get(context.Background(), owner, 10)

	require.NoError(t, err)
	assert.Equal(t, "to read", got.Name)
}

func TestGet_StrangerSeesNotFound(t *testing.T) {
	_, svc := seeded()

	_, err := svc.Get(context.Background(), stranger, 10)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_AdminSeesAnyRow(t *testing.T) {
	_, svc := seeded()

	_, err := svc.Get(context.Background(), admin, 10)

	assert.NoError(t, err)
}

func TestReplace_KeepsOwner(t *testing.T) {
	_, svc := seeded()

	updated, err := svc.Replace(context.Background(), admin, 10, &Request{Name: "renamed"})

	require.NoError(t, err)
	assert.Equal(t, owner.UserID, updated.UserID)
	assert.Equal(t, "renamed", updated.Name)
}

func TestReplace_StrangerForbidden(t *testing.T) {
	_, svc := seeded()

	_, err := svc.Replace(context.Background(), stranger, 10, &Request{Name: "hijacked"})

	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestPatch_StrangerForbidden(t *testing.T) {
	_, svc := seeded()

	name := "hijacked"
	_, err := svc.Patch(context.Background(), stranger, 10, &Patch{Name: &name})

	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestDelete_StrangerForbidden(t *testing.T) {
	repo, svc := seeded()

	err := svc.Delete(context.Background(), stranger, 10)

	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Empty(t, repo.deleted)
}

func TestDelete_AbsentIsNoop(t *testing.T) {
	_, svc := seeded()

	assert.NoError(t, svc.Delete(context.Background(), owner, 999))
}

func TestDelete_Owner(t *testing.T) {
	repo, svc := seeded()

	require.NoError(t, svc.Delete(context.Background(), owner, 10))
	assert.Equal(t, []int64{10}, repo.deleted)
}
