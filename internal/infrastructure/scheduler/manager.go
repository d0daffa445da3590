// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

const (
	tokenPurgeInterval = 6 * time.Hour
	tokenPurgeTimeout  = 2 * time.Minute
)

// BatchJob processes one batch and reports how many rows it touched.
type BatchJob interface {
	Execute(ctx context.Context) (int64, error)
}

// BatchJobFunc adapts a function to BatchJob.
type BatchJobFunc func(ctx context.Context) (int64, error)

func (f BatchJobFunc) Execute(ctx context.Context) (int64, error) {
	return f(ctx)
}

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterTokenPurgeJob removes expired refresh tokens every six hours,
// starting immediately.
func (m *SchedulerManager) RegisterTokenPurgeJob(purge BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(tokenPurgeInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), tokenPurgeTimeout)
			defer cancel()
			m.runBatch(ctx, "refresh-token-purge", purge)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("auth", "cleanup"),
		gocron.WithName("refresh-token-purge"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered refresh token purge job", "interval", tokenPurgeInterval)
	return nil
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	if count > 0 {
		m.logger.Infow("scheduled job processed rows",
			"job", name,
			"count", count,
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
