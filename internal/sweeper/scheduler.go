// Package sweeper periodically removes stored data of accounts that no longer
// exist in the auth provider.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/feelio/feelio-backend/internal/metrics"
)

// Sweeper is implemented by the account service.
type Sweeper interface {
	SweepOrphans(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	metrics *metrics.Metrics
	logger  *slog.Logger
	timeout time.Duration
}

func NewScheduler(sweeper Sweeper, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		metrics: m,
		logger:  logger.With("job", "orphan-sweep"),
		timeout: 30 * time.Minute,
	}
}

// Start registers the sweep on a six-field cron spec (seconds first) and
// starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}
	s.cron.Start()
	s.logger.Info("cron scheduler started", "schedule", spec)
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one sweep and returns how many accounts were cleaned.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("sweep started")

	n, err := s.sweeper.SweepOrphans(ctx)
	if s.metrics != nil && n > 0 {
		s.metrics.SweptAccounts.Add(float64(n))
	}
	if err != nil {
		s.logger.Error("sweep failed", "removed", n, "error", err)
		return n
	}

	s.logger.Info("sweep completed", "removed", n, "took", time.Since(start))
	return n
}
