package scheduler

import (
	"context"
	"log/slog"
	"time"

	"shelter_sync/internal/domain"
)

// Runner is one ETL invocation.
type Runner interface {
	Run(ctx context.Context) (*domain.RunStats, error)
}

// Scheduler runs the ETL immediately and then on every tick until the
// context is cancelled. Runs never overlap: each one finishes before the
// next tick is consumed.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error("run failed", "error", err)
	}
}
