package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/clima-ecuador/internal/dashboard"
)

// Source lists the dashboards to keep up to date.
type Source func() []*dashboard.Controller

// Scheduler periodically refreshes every live dashboard's current selection.
// A refresh is a plain refetch; it never retries a failed one.
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    Source
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger

	// OnRefreshed, if set, is called with each refreshed state.
	OnRefreshed func(dashboard.State)

	// MaxConcurrent bounds how many dashboards refresh at once. Values <= 0
	// use defaultMaxConcurrent.
	MaxConcurrent int
}

const defaultMaxConcurrent = 4

// New creates a new Scheduler. An interval <= 0 disables it.
func New(interval time.Duration, source Source, logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		source:    source,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger.Named("scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("auto-refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.logger.Info("auto-refresh scheduled", zap.Duration("interval", s.interval))
	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes every dashboard from the source, at most MaxConcurrent at
// a time, and waits for all of them. Each dashboard's timeout starts when its
// own refresh starts.
func (s *Scheduler) RunOnce(ctx context.Context) {
	controllers := s.source()
	if len(controllers) == 0 {
		return
	}

	s.logger.Debug("running refresh job", zap.Int("dashboards", len(controllers)))

	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = defaultMaxConcurrent
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for _, ctrl := range controllers {
		ctrl := ctrl
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			st := ctrl.Refresh(ctx)
			if st.LastFailure != nil {
				s.logger.Warn("refresh left dashboard stale",
					zap.String("location", st.Location().Key()),
					zap.String("op", st.LastFailure.Op),
					zap.String("reason", string(st.LastFailure.Reason)),
				)
			}
			if s.OnRefreshed != nil {
				s.OnRefreshed(st)
			}
		}()
	}
	wg.Wait()

	s.logger.Debug("completed refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
