package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task types processed by cmd/worker.
const (
	TypeBookRecalcStats       = "book:recalc_stats"
	TypeCollectionRecalcCount = "collection:recalc_count"
	TypeStatsReconcileAll     = "stats:reconcile_all"
)

// BookStatsPayload identifies the book whose denormalized rating/review
// aggregates must be recomputed.
type BookStatsPayload struct {
	BookID int64 `json:"book_id"`
}

// CollectionCountPayload identifies the collection whose book_count must be
// recomputed.
type CollectionCountPayload struct {
	CollectionID int64 `json:"collection_id"`
}

func NewBookStatsTask(bookID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(BookStatsPayload{BookID: bookID})
	if err != nil {
		return nil, fmt.Errorf("marshal book stats payload: %w", err)
	}
	return asynq.NewTask(TypeBookRecalcStats, payload), nil
}

func NewCollectionCountTask(collectionID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(CollectionCountPayload{CollectionID: collectionID})
	if err != nil {
		return nil, fmt.Errorf("marshal collection count payload: %w", err)
	}
	return asynq.NewTask(TypeCollectionRecalcCount, payload), nil
}

func NewStatsReconcileAllTask() *asynq.Task {
	return asynq.NewTask(TypeStatsReconcileAll, nil)
}
