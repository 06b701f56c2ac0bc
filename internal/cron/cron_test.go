package cron

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitForStatus(t *testing.T, s *Scheduler, name string, want JobStatus) ListItem {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, item := range s.List() {
			if item.Name == name && item.Status == want {
				return item
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %q never reached status %q", name, want)
	return ListItem{}
}

func TestRegisterAndList(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:        "cleanup",
		Description: "wipe collections",
		Interval:    time.Hour,
		Fn:          func(context.Context) error { return nil },
	})

	items := s.List()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	item := items[0]
	if item.Name != "cleanup" || item.Status != StatusIdle {
		t.Errorf("item = %+v, want idle cleanup job", item)
	}
	if item.NextDate == nil || !item.NextDate.After(time.Now()) {
		t.Errorf("next date = %v, want a future time", item.NextDate)
	}
	if item.LastRunAt != nil {
		t.Errorf("last run = %v, want nil before first run", item.LastRunAt)
	}
}

func TestRunExecutesJob(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := New()
	s.Register(Job{
		Name:     "job",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
	})

	if err := s.Run(context.Background(), "job"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job function never ran")
	}

	item := waitForStatus(t, s, "job", StatusFulfill)
	if item.LastRunAt == nil {
		t.Error("last run not recorded")
	}
	if item.Message != "" {
		t.Errorf("message = %q, want empty after success", item.Message)
	}
}

func TestRunRecordsFailure(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:     "job",
		Interval: time.Hour,
		Fn: func(context.Context) error {
			return errors.New("boom")
		},
	})

	if err := s.Run(context.Background(), "job"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	item := waitForStatus(t, s, "job", StatusReject)
	if item.Message != "boom" {
		t.Errorf("message = %q, want boom", item.Message)
	}
}

func TestRunDetachesFromCallerContext(t *testing.T) {
	errs := make(chan error, 1)
	s := New()
	s.Register(Job{
		Name:     "job",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			errs <- ctx.Err()
			return nil
		},
	})

	// A request-scoped trigger context may already be gone when the job runs.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, "job"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("job saw a canceled context: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}

func TestRunUnknownJob(t *testing.T) {
	s := New()
	if err := s.Run(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for an unknown job")
	}
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	ran := make(chan struct{}, 4)
	s := New()
	s.Register(Job{
		Name:     "fast",
		Interval: 10 * time.Millisecond,
		Fn: func(context.Context) error {
			ran <- struct{}{}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatalf("run %d never happened", i+1)
		}
	}
}
