package audit

import (
	"context"
	"testing"
)

func TestSchedulerEmptyScheduleIsNoOp(t *testing.T) {
	log := NewLog(0)
	s := NewScheduler(log, "", func(events []*Event) error { return nil })

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler should stay idle without a schedule")
	}
	if s.NextRun() != nil {
		t.Error("NextRun should be nil when idle")
	}
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	log := NewLog(0)
	s := NewScheduler(log, "not a cron line", func(events []*Event) error { return nil })

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("invalid schedule should fail Start")
	}
	if s.IsRunning() {
		t.Error("scheduler should not be running after a failed Start")
	}
}

func TestSchedulerStartStop(t *testing.T) {
	log := NewLog(0)
	s := NewScheduler(log, "0 3 * * *", func(events []*Event) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	if s.NextRun() == nil {
		t.Error("NextRun should report the next scheduled snapshot")
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("scheduler should stop")
	}

	// Stop again is safe.
	s.Stop()
}

func TestSchedulerRunSnapshot(t *testing.T) {
	log := NewLog(0)
	log.Append(testEvent("svc"))
	log.Append(testEvent("svc"))

	var got []*Event
	s := NewScheduler(log, "0 3 * * *", func(events []*Event) error {
		got = events
		return nil
	})

	s.runSnapshot()
	if len(got) != 2 {
		t.Errorf("snapshot received %d events, want 2", len(got))
	}
	if log.Len() != 2 {
		t.Errorf("snapshot must not prune the log, len = %d", log.Len())
	}
}
