// Package job provides background job processing using Asynq, a Redis-backed
// task queue. Tasks are enqueued through the Client and processed by worker
// goroutines pulled from the same Redis instance.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/config"
	"github.com/medcamp/mcms/internal/lib/email"
)

// JobService holds the Asynq client (enqueue side) and server (worker side),
// plus the dependencies the task handlers need.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis instance from cfg.
// Queue weights give confirmation emails more worker share than low-priority
// work.
func NewJobService(cfg *config.Config, logger *zerolog.Logger) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		email:  email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Start registers the task handlers and starts the worker server. Start is
// non-blocking; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRegistrationConfirmed, j.handleRegistrationConfirmedTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the worker server and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
