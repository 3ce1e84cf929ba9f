// Package batch runs many commands with bounded concurrency.
// Tasks are independent: a failure is recorded, never retried, and does not
// stop the rest of the batch.
package batch

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/spade/internal/logging"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/ports"
)

// Task pairs a CommandSpec with a label for progress reporting.
type Task struct {
	Label string
	Spec  domain.CommandSpec
}

// Result records how one task finished.
type Result struct {
	Task    Task
	Outcome domain.Outcome
	Err     error
}

// Pool schedules tasks over a bounded set of workers.
type Pool struct {
	runner  ports.CommandRunner
	workers int
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the pool.
type Option func(*Pool)

// WithWorkers sets the concurrency limit (minimum 1, default 2).
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithHooks registers observability callbacks fired per finished task.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pool) {
		p.hooks = hooks
	}
}

// WithLogger sets a structured logger for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// New creates a pool around the given runner.
func New(runner ports.CommandRunner, opts ...Option) *Pool {
	p := &Pool{
		runner:  runner,
		workers: 2,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes all tasks and returns results in completion order.
// Canceling ctx stops scheduling; tasks already started run to completion
// under their own context handling.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	sem := make(chan struct{}, p.workers)
	results := make(chan Result)
	var wg sync.WaitGroup

	start := time.Now()
	p.logger.Info("starting batch", "tasks", len(tasks), "workers", p.workers)

	for _, t := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results <- Result{Task: t, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			outcome, err := p.runner.Run(ctx, t.Spec)
			if p.hooks.OnRunFinish != nil {
				p.hooks.OnRunFinish(ctx, &domain.RunEvent{
					Timestamp: time.Now(),
					Spec:      t.Spec,
					Outcome:   outcome,
					Err:       err,
				})
			}
			results <- Result{Task: t, Outcome: outcome, Err: err}
		}(t)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]Result, 0, len(tasks))
	for res := range results {
		collected = append(collected, res)

		elapsed := time.Since(start).Round(time.Second)
		avg := (elapsed / time.Duration(len(collected))).Round(time.Second)
		if res.Err != nil {
			p.logger.Warn("task failed",
				"task", res.Task.Label, "err", res.Err,
				"progress", progress(len(collected), len(tasks)),
				"elapsed", elapsed, "avg", avg)
		} else {
			p.logger.Info("task done",
				"task", res.Task.Label,
				"progress", progress(len(collected), len(tasks)),
				"elapsed", elapsed, "avg", avg)
		}
	}
	return collected
}

// Failed filters the results down to failures, preserving completion order.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// progress renders "3/10" rather than a ratio so log lines read at a glance.
func progress(done, total int) string {
	return strconv.Itoa(done) + "/" + strconv.Itoa(total)
}
