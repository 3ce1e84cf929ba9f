package batch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spade/pkg/domain"
)

// gaugeRunner tracks how many runs are in flight at once.
type gaugeRunner struct {
	mu        sync.Mutex
	active    int
	maxActive int
	fail      map[string]int // command name -> exit code
}

func (g *gaugeRunner) Run(ctx context.Context, spec domain.CommandSpec) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, &domain.LaunchFailedError{Name: spec.Name, Err: err}
	}

	g.mu.Lock()
	g.active++
	if g.active > g.maxActive {
		g.maxActive = g.active
	}
	g.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	g.mu.Lock()
	g.active--
	code, shouldFail := g.fail[spec.Name]
	g.mu.Unlock()

	if shouldFail {
		return domain.Outcome{ExitCode: code}, &domain.NonZeroExitError{Name: spec.Name, ExitCode: code}
	}
	return domain.Outcome{}, nil
}

func specs(names ...string) []Task {
	tasks := make([]Task, 0, len(names))
	for _, n := range names {
		tasks = append(tasks, Task{Label: n, Spec: domain.CommandSpec{Name: n, Wait: true}})
	}
	return tasks
}

func TestPool_BoundedConcurrency(t *testing.T) {
	runner := &gaugeRunner{}
	pool := New(runner, WithWorkers(2))

	results := pool.Run(context.Background(), specs("a", "b", "c", "d", "e", "f"))

	assert.Len(t, results, 6)
	assert.LessOrEqual(t, runner.maxActive, 2, "worker limit must bound concurrency")
	assert.Greater(t, runner.maxActive, 1, "more than one worker should actually run")
}

func TestPool_CollectsFailuresWithoutStopping(t *testing.T) {
	runner := &gaugeRunner{fail: map[string]int{"b": 1, "d": 127}}
	pool := New(runner, WithWorkers(2))

	results := pool.Run(context.Background(), specs("a", "b", "c", "d"))

	require.Len(t, results, 4, "a failure must not stop the batch")
	failed := Failed(results)
	require.Len(t, failed, 2)

	labels := map[string]int{}
	for _, f := range failed {
		labels[f.Task.Label] = f.Outcome.ExitCode
	}
	assert.Equal(t, map[string]int{"b": 1, "d": 127}, labels)
}

func TestPool_EmptyBatch(t *testing.T) {
	pool := New(&gaugeRunner{})
	assert.Nil(t, pool.Run(context.Background(), nil))
}

func TestPool_CancelStopsScheduling(t *testing.T) {
	runner := &gaugeRunner{}
	pool := New(runner, WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel before anything is scheduled

	results := pool.Run(ctx, specs("a", "b", "c"))

	require.Len(t, results, 3, "every task still gets a result")
	for _, r := range results {
		assert.Error(t, r.Err, "canceled tasks must report their error")
	}
}

func TestPool_FiresRunHooks(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	hooks := domain.LifecycleHooks{
		OnRunFinish: func(_ context.Context, ev *domain.RunEvent) {
			mu.Lock()
			seen = append(seen, ev.Spec.Name)
			mu.Unlock()
		},
	}

	pool := New(&gaugeRunner{}, WithWorkers(2), WithHooks(hooks))
	pool.Run(context.Background(), specs("a", "b", "c"))

	assert.Len(t, seen, 3)
}
