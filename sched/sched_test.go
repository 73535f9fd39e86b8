package sched

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunExecutesJobImmediately(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Add(Job{
		Name:     "probe",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want exactly 1 immediate run before the first tick", got)
	}
}

func TestRunRepeatsOnInterval(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Add(Job{
		Name:     "fast",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	if got := calls.Load(); got < 3 {
		t.Fatalf("calls = %d, want at least 3 over 150ms at 20ms intervals", got)
	}
}

func TestJobEveryRereadEachCycle(t *testing.T) {
	var runs atomic.Int32
	s := New(nil)
	s.Add(Job{
		Name: "dynamic",
		Every: func() time.Duration {
			if runs.Load() >= 3 {
				return time.Hour
			}
			return 10 * time.Millisecond
		},
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	if got := runs.Load(); got != 3 {
		t.Fatalf("runs = %d, want 3 before the interval stretched to an hour", got)
	}
}

func TestJobErrorDoesNotStopSchedule(t *testing.T) {
	var calls atomic.Int32
	s := New(nil)
	s.Add(Job{
		Name:     "flaky",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			return fmt.Errorf("always fails")
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_ = s.Run(ctx)

	if got := calls.Load(); got < 2 {
		t.Fatalf("calls = %d, want the job rescheduled after an error", got)
	}
}

func TestRunReturnsContextError(t *testing.T) {
	s := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); err != context.Canceled {
		t.Fatalf("Run() err = %v, want context.Canceled", err)
	}
}

func TestTriggerCoalesces(t *testing.T) {
	tr := NewTrigger()
	for i := 0; i < 10; i++ {
		tr.Fire()
	}

	select {
	case <-tr.Wait():
	default:
		t.Fatalf("no wakeup pending after Fire()")
	}
	select {
	case <-tr.Wait():
		t.Fatalf("second wakeup pending, want 10 fires coalesced into 1")
	default:
	}
}

func TestTriggerFireNeverBlocks(t *testing.T) {
	tr := NewTrigger()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			tr.Fire()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Fire() blocked")
	}
}
