package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher produces a new overall recommendation.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

type Scheduler struct {
	log       *zap.Logger
	refresher Refresher
	interval  time.Duration
}

func NewScheduler(log *zap.Logger, refresher Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		log:       log,
		refresher: refresher,
		interval:  interval,
	}
}

// Start runs the scheduler in a goroutine until ctx is done. A zero
// interval disables it.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("Recommendation scheduler disabled")
		return
	}
	s.log.Info("Starting recommendation scheduler...", zap.Duration("interval", s.interval))
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Info("Recommendation scheduler stopped")
				return
			case <-ticker.C:
				s.runRefresh(ctx)
			}
		}
	}()
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	s.log.Debug("Running scheduled recommendation refresh")
	if err := s.refresher.Refresh(ctx); err != nil {
		s.log.Error("Scheduled recommendation refresh failed", zap.Error(err))
	}
}

// InsightsRefresher adapts InsightsService to the scheduler.
func InsightsRefresher(s *InsightsService) Refresher {
	return RefreshFunc(func(ctx context.Context) error {
		_, err := s.Refresh(ctx)
		return err
	})
}
