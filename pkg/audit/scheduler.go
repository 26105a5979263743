package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SnapshotFunc receives a copy of the log's events on each scheduled run.
// Implementations typically hand the slice to an exporter. The log is never
// pruned by the scheduler; events are removed only by an explicit Clear.
type SnapshotFunc func(events []*Event) error

// Scheduler runs periodic snapshot exports of an audit log on a cron
// schedule.
type Scheduler struct {
	log      *Log
	snapshot SnapshotFunc
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a snapshot scheduler for the given log.
//
// Common cron expressions:
//   - "0 3 * * *"   - daily at 3 AM
//   - "0 */6 * * *" - every 6 hours
func NewScheduler(log *Log, schedule string, snapshot SnapshotFunc) *Scheduler {
	return &Scheduler{
		log:      log,
		snapshot: snapshot,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "audit.scheduler"),
	}
}

// Start begins scheduled snapshots. An empty schedule is a no-op so callers
// can wire the scheduler unconditionally and configure it away.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("snapshot schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runSnapshot); err != nil {
		return fmt.Errorf("failed to schedule audit snapshot: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("audit snapshot scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSnapshot executes one snapshot cycle.
func (s *Scheduler) runSnapshot() {
	events := s.log.Events()

	if err := s.snapshot(events); err != nil {
		s.logger.Error("scheduled audit snapshot failed",
			"event_count", len(events),
			"error", err,
		)
		return
	}

	s.logger.Info("scheduled audit snapshot completed", "event_count", len(events))
}

// Stop stops the scheduler and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("audit snapshot scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled snapshot time, or nil when idle.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
