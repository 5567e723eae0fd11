// Package tasks runs registered background jobs on cron schedules. Used by
// applications for housekeeping such as session garbage collection.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/adhocore/gronx"

	"github.com/ihildebrandt/fuelgo/pkg/logger"
)

// Task is one scheduled job.
type Task struct {
	Name string
	Cron string
	Fn   func(ctx context.Context) error
}

// Runner schedules tasks with full cron syntax.
type Runner struct {
	mu    sync.Mutex
	tasks []Task
}

// NewRunner constructs an empty Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Add registers fn under name with a cron expression, validating the
// expression up front.
func (r *Runner) Add(name, cronExpr string, fn func(ctx context.Context) error) error {
	if !gronx.IsValid(cronExpr) {
		return fmt.Errorf("invalid cron expression for task %s: %s", name, cronExpr)
	}
	r.mu.Lock()
	r.tasks = append(r.tasks, Task{Name: name, Cron: cronExpr, Fn: fn})
	r.mu.Unlock()
	return nil
}

// Start launches one scheduler goroutine per task and returns a cancel
// func stopping them all.
func (r *Runner) Start(ctx context.Context) context.CancelFunc {
	ctx2, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	tasks := append([]Task(nil), r.tasks...)
	r.mu.Unlock()
	for _, t := range tasks {
		go r.schedule(ctx2, t)
	}
	logger.Info("task_runner_started", "tasks", len(tasks))
	return cancel
}

// schedule computes the next tick for the task's cron expression and sleeps
// until that time, yielding sharp scheduling with full cron syntax.
func (r *Runner) schedule(ctx context.Context, t Task) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("task_scheduler_stopping", "task", t.Name)
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(t.Cron, now, false)
		if err != nil {
			logger.Error("task_nexttick_failed", "task", t.Name, "cron", t.Cron, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		wait := time.Until(next)
		if wait <= 0 {
			r.run(ctx, t)
			// small sleep to avoid a tight loop on the same tick
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(wait):
			r.run(ctx, t)
		case <-ctx.Done():
			logger.Info("task_scheduler_stopping", "task", t.Name)
			return
		}
	}
}

func (r *Runner) run(ctx context.Context, t Task) {
	go func() {
		start := time.Now()
		if err := t.Fn(ctx); err != nil {
			logger.Error("task_run_error", "task", t.Name, "error", err)
			return
		}
		logger.Info("task_run_complete", "task", t.Name, "elapsed", time.Since(start).String())
	}()
}
