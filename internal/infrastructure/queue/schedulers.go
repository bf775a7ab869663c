package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"auction-backend/internal/shared"
	"auction-backend/pkg/logger"
)

// Scheduler registers the recurring auction maintenance jobs with
// asynq. The worker process picks the tasks up and performs them.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
	}
}

func (s *Scheduler) RegisterAuctionJobs() error {
	if err := s.registerRenewExpiredLotsJob(); err != nil {
		return err
	}

	return s.registerExportFinishedLotsJob()
}

// ================================================
// JOB 1: Renew Expired Lots (Daily at 00:01)
// ================================================
func (s *Scheduler) registerRenewExpiredLotsJob() error {
	payload, err := json.Marshal(shared.RenewExpiredLotsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRenewExpiredLots, payload)

	_, err = s.scheduler.Register(
		"1 0 * * *", // Daily at 00:01
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RenewExpiredLots job", err)
		return err
	}

	return nil
}

// ================================================
// JOB 2: Export Finished Lots (Daily at 01:00)
// ================================================
func (s *Scheduler) registerExportFinishedLotsJob() error {
	payload, err := json.Marshal(shared.ExportFinishedLotsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeExportFinishedLots, payload)

	_, err = s.scheduler.Register(
		"0 1 * * *", // Daily at 01:00
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ExportFinishedLots job", err)
		return err
	}

	return nil
}

// Start runs the scheduler loop (blocking).
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

// Shutdown stops the scheduler.
func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
