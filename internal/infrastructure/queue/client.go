package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Enqueuer is what services see: fire-and-forget enqueue of the recalc
// tasks. Enqueue failures are logged, never surfaced to the request, so the
// denormalized aggregates can lag but the write itself still succeeds.
type Enqueuer interface {
	EnqueueBookStats(ctx context.Context, bookID int64)
	EnqueueCollectionCount(ctx context.Context, collectionID int64)
}

// Client wraps the asynq client.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

var _ Enqueuer = (*Client)(nil)

func (c *Client) EnqueueBookStats(ctx context.Context, bookID int64) {
	task, err := NewBookStatsTask(bookID)
	if err != nil {
		log.Error().Err(err).Int64("book_id", bookID).Msg("failed to build book stats task")
		return
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
		log.Error().Err(err).Int64("book_id", bookID).Msg("failed to enqueue book stats task")
	}
}

func (c *Client) EnqueueCollectionCount(ctx context.Context, collectionID int64) {
	task, err := NewCollectionCountTask(collectionID)
	if err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("failed to build collection count task")
		return
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue("default")); err != nil {
		log.Error().Err(err).Int64("collection_id", collectionID).Msg("failed to enqueue collection count task")
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}
