package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-backend/internal/shared"
	"booker-backend/internal/shared/criteria"
)

type fakeRepo struct {
	rows   map[int64]*Review
	nextID int64
}

func newFakeRepo(seed ...*Review) *fakeRepo {
	r := &fakeRepo{rows: make(map[int64]*Review), nextID: 1}
	for _, e := range seed {
		r.rows[e.ID] = e
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, e *Review) (*Review, error) {
	e.ID = r.nextID
	r.nextID++
	r.rows[e.ID] = e
	return e, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Review, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ *Criteria, _ criteria.Pageable) ([]Review, error) {
	return nil, nil
}

func (r *fakeRepo) Count(_ context.Context, _ *Criteria) (int64, error) {
	return 0, nil
}

func (r *fakeRepo) Update(_ context.Context, e *Review) (*Review, error) {
	if _, ok := r.rows[e.ID]; !ok {
		return nil, ErrNotFound
	}
	r.rows[e.ID] = e
	return e, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.rows, id)
	return nil
}

// fakeQueue records which books had a stats recompute scheduled.
type fakeQueue struct {
	bookIDs       []int64
	collectionIDs []int64
}

func (q *fakeQueue) EnqueueBookStats(_ context.Context, bookID int64) {
	q.bookIDs = append(q.bookIDs, bookID)
}

func (q *fakeQueue) EnqueueCollectionCount(_ context.Context, collectionID int64) {
	q.collectionIDs = append(q.collectionIDs, collectionID)
}

var alice = shared.Actor{UserID: 1}

func TestCreate_SchedulesBookStats(t *testing.T) {
	q := &fakeQueue{}
	svc := NewService(newFakeRepo(), q)

	created, err := svc.Create(context.Background(), alice, &Request{BookID: 7})

	require.NoError(t, err)
	assert.Equal(t, alice.UserID, created.UserID)
	assert.Equal(t, []int64{7}, q.bookIDs)
}

func TestPatch_MovingBookSchedulesBothSides(t *testing.T) {
	q := &fakeQueue{}
	seed := &Review{ID: 5, BookID: 7, UserID: alice.UserID}
	svc := NewService(newFakeRepo(seed), q)

	newBook := int64(8)
	_, err := svc.Patch(context.Background(), alice, 5, &Patch{BookID: &newBook})

	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 8}, q.bookIDs)
}

func TestPatch_SameBookSchedulesOnce(t *testing.T) {
	q := &fakeQueue{}
	seed := &Review{ID: 5, BookID: 7, UserID: alice.UserID}
	svc := NewService(newFakeRepo(seed), q)

	rating := 4
	_, err := svc.Patch(context.Background(), alice, 5, &Patch{Rating: &rating})

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, q.bookIDs)
}

func TestDelete_SchedulesBookStats(t *testing.T) {
	q := &fakeQueue{}
	seed := &Review{ID: 5, BookID: 7, UserID: alice.UserID}
	svc := NewService(newFakeRepo(seed), q)

	require.NoError(t, svc.Delete(context.Background(), alice, 5))
	assert.Equal(t, []int64{7}, q.bookIDs)
}

func TestDelete_AbsentSchedulesNothing(t *testing.T) {
	q := &fakeQueue{}
	svc := NewService(newFakeRepo(), q)

	require.NoError(t, svc.Delete(context.Background(), alice, 99))
	assert.Empty(t, q.bookIDs)
}
