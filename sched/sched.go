// Package sched runs the periodic jobs that keep a display current: data
// refreshes on per-source intervals and renders on the layout interval.
package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic task. Run errors are logged, not fatal; the job keeps
// its schedule. When Every is set it is consulted before each wait, so the
// interval may change between runs; otherwise Interval is fixed.
type Job struct {
	Name     string
	Interval time.Duration
	Every    func() time.Duration
	Run      func(ctx context.Context) error
}

func (j Job) interval() time.Duration {
	d := j.Interval
	if j.Every != nil {
		d = j.Every()
	}
	if d <= 0 {
		d = time.Minute
	}
	return d
}

// Scheduler drives a set of jobs, one goroutine per job.
type Scheduler struct {
	mu   sync.Mutex
	jobs []Job
	log  *slog.Logger
}

func New(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{log: log}
}

// Add registers a job. Jobs added after Run starts are ignored.
func (s *Scheduler) Add(j Job) {
	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()
}

// Run executes every job once immediately, then on its interval, until the
// context is cancelled. It blocks and always returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j Job) {
			defer wg.Done()
			s.runJob(ctx, j)
		}(j)
	}
	wg.Wait()
	return ctx.Err()
}

func (s *Scheduler) runJob(ctx context.Context, j Job) {
	s.log.Info("job scheduled", "job", j.Name, "interval", j.interval())

	s.step(ctx, j)
	t := time.NewTimer(j.interval())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.step(ctx, j)
			t.Reset(j.interval())
		}
	}
}

func (s *Scheduler) step(ctx context.Context, j Job) {
	if err := j.Run(ctx); err != nil {
		s.log.Error("job failed", "job", j.Name, "error", err)
	}
}

// Trigger is a depth-1 wakeup channel. Signals arriving while one is already
// pending coalesce into a single wakeup.
type Trigger struct {
	ch chan struct{}
}

func NewTrigger() *Trigger {
	return &Trigger{ch: make(chan struct{}, 1)}
}

// Fire requests a wakeup. Never blocks.
func (t *Trigger) Fire() {
	select {
	case t.ch <- struct{}{}:
	default:
	}
}

// Wait returns the channel a consumer selects on.
func (t *Trigger) Wait() <-chan struct{} { return t.ch }
