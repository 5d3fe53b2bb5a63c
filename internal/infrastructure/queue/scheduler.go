package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Scheduler registers periodic reconciliation jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			},
			nil,
		),
	}
}

// RegisterReconcileJobs schedules the nightly full resweep of the
// denormalized aggregates (book stats, collection counts).
func (s *Scheduler) RegisterReconcileJobs(cronSpec string) error {
	if cronSpec == "" {
		cronSpec = "0 3 * * *"
	}

	if _, err := s.scheduler.Register(cronSpec, NewStatsReconcileAllTask(), asynq.Queue("low")); err != nil {
		return fmt.Errorf("register reconcile job: %w", err)
	}

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
