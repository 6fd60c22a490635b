package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically evicts stale typing entries from a Tracker. It runs
// as a managed background worker.
type Sweeper struct {
	tracker  *Tracker
	interval time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewSweeper creates a sweeper for the tracker. A non-positive interval
// falls back to DefaultSweepInterval.
func NewSweeper(tracker *Tracker, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		tracker:  tracker,
		interval: interval,
		logger:   logger,
	}
}

// Start starts the sweep loop
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("presence sweeper is already running")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.isRunning = true

	s.logger.Info("Presence sweeper started", zap.Duration("interval", s.interval))

	go s.sweepLoop()
	return nil
}

// Stop stops the sweep loop
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	if s.cancel != nil {
		s.cancel()
	}

	s.logger.Info("Presence sweeper stopped")
	return nil
}

// Name returns the worker name for identification
func (s *Sweeper) Name() string {
	return "PresenceSweeper"
}

func (s *Sweeper) sweepLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.tracker.Sweep(); evicted > 0 {
				s.logger.Debug("Evicted stale typing entries", zap.Int("count", evicted))
			}
		}
	}
}
