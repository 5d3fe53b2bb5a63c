package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"booker-backend/internal/config"
	"booker-backend/internal/infrastructure/database"
	"booker-backend/internal/infrastructure/queue"
)

// Run starts the task server and the cron scheduler, then blocks until a
// shutdown signal arrives.
func Run() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	dbConfig, err := config.LoadDatabaseConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"high":    6,
			"default": 3,
			"low":     1,
		},
	})

	mux := asynq.NewServeMux()
	queue.NewHandlers(db.Pool).Register(mux)

	scheduler := queue.NewScheduler(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterReconcileJobs(os.Getenv("RECONCILE_CRON")); err != nil {
		log.Fatal().Err(err).Msg("failed to register scheduled jobs")
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler stopped unexpectedly")
		}
	}()

	go func() {
		log.Info().Msg("worker starting")
		if err := srv.Start(mux); err != nil {
			log.Fatal().Err(err).Msg("worker stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")

	scheduler.Shutdown()
	srv.Shutdown()

	log.Info().Msg("worker exited")
}
