// Package scheduler runs background maintenance jobs on cron schedules,
// decoupled from the request-handling path.
package scheduler

import (
	"github.com/robfig/cron/v3"

	"moneta/internal/logger"
)

// Job is a named unit of background work. A failing run is logged and
// retried on the next schedule; it never aborts the scheduler.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler using the standard 5-field cron format.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddJob registers a job with the given cron schedule, e.g. "0 3 * * *"
// for 03:00 every day.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		log := logger.Get()
		log.Infow("job started", "job", job.Name())
		if err := job.Run(); err != nil {
			log.Errorw("job failed", "job", job.Name(), "error", err)
			return
		}
		log.Infow("job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}

	logger.Get().Infow("job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

// Start begins executing registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Info("scheduler started")
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Get().Info("scheduler stopped")
}
