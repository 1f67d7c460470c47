package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultJobTimeout bounds a single run of any job
const DefaultJobTimeout = 5 * time.Minute

// Job is one periodic background task
type Job struct {
	Name string
	// Spec is a robfig/cron schedule such as "@every 5m" or "@daily"
	Spec string
	Run  func(ctx context.Context) error
	// RunOnStart also runs the job once, in the background, when the scheduler starts
	RunOnStart bool
}

// Scheduler handles periodic background jobs for dashboard refresh and index upkeep
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	Timeout time.Duration
}

// NewScheduler creates a new scheduler instance
func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		jobs:    jobs,
		Timeout: DefaultJobTimeout,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	for _, job := range s.jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
			zap.S().Errorw("failed to register job", "job", job.Name, "spec", job.Spec, "error", err)
			return err
		}
		if job.RunOnStart {
			go s.run(job)
		}
	}

	s.cron.Start()
	zap.S().Infow("scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

// Entries exposes the registered cron entries
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("scheduled job panicked", "job", job.Name, "panic", r)
		}
	}()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		zap.S().Warnw("scheduled job failed", "job", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	zap.S().Debugw("scheduled job finished", "job", job.Name, "duration", time.Since(start))
}
