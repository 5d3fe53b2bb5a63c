package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Handlers owns the background recomputation of denormalized columns.
// Every task recomputes from the source tables, so replays and reordering
// are harmless.
type Handlers struct {
	pool *pgxpool.Pool
}

func NewHandlers(pool *pgxpool.Pool) *Handlers {
	return &Handlers{pool: pool}
}

// Register binds every task type this worker knows about.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeBookRecalcStats, h.HandleBookRecalcStats)
	mux.HandleFunc(TypeCollectionRecalcCount, h.HandleCollectionRecalcCount)
	mux.HandleFunc(TypeStatsReconcileAll, h.HandleStatsReconcileAll)
}

const bookStatsQuery = `
	UPDATE books b
	SET average_rating = stats.avg_rating,
	    total_ratings  = stats.rating_count,
	    total_reviews  = stats.review_count,
	    updated_at     = NOW()
	FROM (
	    SELECT
	        (SELECT ROUND(AVG(r.rating)::numeric, 2) FROM ratings r WHERE r.book_id = $1) AS avg_rating,
	        (SELECT COUNT(*) FROM ratings r WHERE r.book_id = $1)                          AS rating_count,
	        (SELECT COUNT(*) FROM reviews rv WHERE rv.book_id = $1)                        AS review_count
	) stats
	WHERE b.id = $1`

func (h *Handlers) HandleBookRecalcStats(ctx context.Context, t *asynq.Task) error {
	var p BookStatsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal book stats payload: %w", err)
	}

	if _, err := h.pool.Exec(ctx, bookStatsQuery, p.BookID); err != nil {
		return fmt.Errorf("failed to recalculate stats for book %d: %w", p.BookID, err)
	}

	log.Debug().Int64("book_id", p.BookID).Msg("recalculated book stats")

	return nil
}

const collectionCountQuery = `
	UPDATE collections c
	SET book_count = (SELECT COUNT(*) FROM book_collections bc WHERE bc.collection_id = $1),
	    updated_at = NOW()
	WHERE c.id = $1`

func (h *Handlers) HandleCollectionRecalcCount(ctx context.Context, t *asynq.Task) error {
	var p CollectionCountPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal collection count payload: %w", err)
	}

	if _, err := h.pool.Exec(ctx, collectionCountQuery, p.CollectionID); err != nil {
		return fmt.Errorf("failed to recalculate count for collection %d: %w", p.CollectionID, err)
	}

	log.Debug().Int64("collection_id", p.CollectionID).Msg("recalculated collection book count")

	return nil
}

const reconcileBooksQuery = `
	UPDATE books b
	SET average_rating = stats.avg_rating,
	    total_ratings  = stats.rating_count,
	    total_reviews  = stats.review_count,
	    updated_at     = NOW()
	FROM (
	    SELECT
	        bk.id,
	        (SELECT ROUND(AVG(r.rating)::numeric, 2) FROM ratings r WHERE r.book_id = bk.id) AS avg_rating,
	        (SELECT COUNT(*) FROM ratings r WHERE r.book_id = bk.id)                          AS rating_count,
	        (SELECT COUNT(*) FROM reviews rv WHERE rv.book_id = bk.id)                        AS review_count
	    FROM books bk
	) stats
	WHERE b.id = stats.id
	  AND (b.average_rating IS DISTINCT FROM stats.avg_rating
	   OR  b.total_ratings  <> stats.rating_count
	   OR  b.total_reviews  <> stats.review_count)`

const reconcileCollectionsQuery = `
	UPDATE collections c
	SET book_count = counts.n,
	    updated_at = NOW()
	FROM (
	    SELECT col.id, (SELECT COUNT(*) FROM book_collections bc WHERE bc.collection_id = col.id) AS n
	    FROM collections col
	) counts
	WHERE c.id = counts.id
	  AND c.book_count <> counts.n`

// HandleStatsReconcileAll sweeps every drifted aggregate back into line.
// Scheduled nightly as a safety net behind the per-entity tasks.
func (h *Handlers) HandleStatsReconcileAll(ctx context.Context, t *asynq.Task) error {
	booksTag, err := h.pool.Exec(ctx, reconcileBooksQuery)
	if err != nil {
		return fmt.Errorf("failed to reconcile book stats: %w", err)
	}

	colsTag, err := h.pool.Exec(ctx, reconcileCollectionsQuery)
	if err != nil {
		return fmt.Errorf("failed to reconcile collection counts: %w", err)
	}

	log.Info().
		Int64("books_fixed", booksTag.RowsAffected()).
		Int64("collections_fixed", colsTag.RowsAffected()).
		Msg("nightly stats reconciliation finished")

	return nil
}
