package installer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/spade/pkg/domain"
)

// fakeResolver simulates the execution path. Installing a tool flips it to
// resolvable, mimicking what a real package manager does.
type fakeResolver struct {
	mu      sync.Mutex
	present map[string]bool
}

func newFakeResolver(present ...string) *fakeResolver {
	r := &fakeResolver{present: make(map[string]bool)}
	for _, name := range present {
		r.present[name] = true
	}
	return r
}

func (r *fakeResolver) Resolve(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.present[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (r *fakeResolver) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.present[name] = true
}

// recordingRunner captures every spec it is asked to run. onRun, when set,
// mutates the world (e.g. marks a tool resolvable) or fails the install.
type recordingRunner struct {
	mu    sync.Mutex
	specs []domain.CommandSpec
	onRun func(domain.CommandSpec) error
}

func (rr *recordingRunner) Run(_ context.Context, spec domain.CommandSpec) (domain.Outcome, error) {
	rr.mu.Lock()
	rr.specs = append(rr.specs, spec)
	rr.mu.Unlock()
	if rr.onRun != nil {
		if err := rr.onRun(spec); err != nil {
			return domain.Outcome{ExitCode: 1}, err
		}
	}
	return domain.Outcome{}, nil
}

func (rr *recordingRunner) calls() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.specs)
}

func testTools() map[string]domain.Tool {
	return map[string]domain.Tool{
		"choco": {
			Name: "choco",
			Install: map[string]domain.Recipe{
				"default": {Command: "bootstrap-choco", Args: []string{"--silent"}},
			},
		},
	}
}

func TestEnsure_AlreadyResolvable(t *testing.T) {
	resolver := newFakeResolver("choco")
	runner := &recordingRunner{}
	inst := New(resolver, runner, WithTools(testTools()), withGOOS("linux"))

	err := inst.Ensure(context.Background(), "choco")

	assert.NoError(t, err)
	assert.Zero(t, runner.calls(), "a resolvable tool must cause no install side effect")
}

func TestEnsure_InstallsOnceAndVerifies(t *testing.T) {
	resolver := newFakeResolver()
	runner := &recordingRunner{
		onRun: func(spec domain.CommandSpec) error {
			resolver.add("choco") // the installer put it on the path
			return nil
		},
	}
	inst := New(resolver, runner, WithTools(testTools()), withGOOS("linux"))

	err := inst.Ensure(context.Background(), "choco")

	require.NoError(t, err)
	require.Equal(t, 1, runner.calls(), "platform installer invoked exactly once")
	assert.Equal(t, "bootstrap-choco", runner.specs[0].Name)
	assert.True(t, runner.specs[0].Wait, "install recipes run synchronously")
}

func TestEnsure_InstallCommandFails(t *testing.T) {
	resolver := newFakeResolver()
	runner := &recordingRunner{
		onRun: func(domain.CommandSpec) error {
			return &domain.NonZeroExitError{Name: "bootstrap-choco", ExitCode: 1}
		},
	}
	inst := New(resolver, runner, WithTools(testTools()), withGOOS("linux"))

	err := inst.Ensure(context.Background(), "choco")

	var failed *domain.InstallationFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "choco", failed.Tool)

	var nz *domain.NonZeroExitError
	assert.True(t, errors.As(err, &nz), "cause stays reachable through the wrap")
}

func TestEnsure_VerificationStillMissing(t *testing.T) {
	resolver := newFakeResolver()
	// Install "succeeds" but never places the tool on the path.
	runner := &recordingRunner{}
	inst := New(resolver, runner, WithTools(testTools()), withGOOS("linux"))

	err := inst.Ensure(context.Background(), "choco")

	var failed *domain.InstallationFailedError
	require.True(t, errors.As(err, &failed))
	assert.ErrorIs(t, err, domain.ErrToolUnresolvable)
}

func TestEnsure_NoRecipeForPlatform(t *testing.T) {
	tools := map[string]domain.Tool{
		"choco": {
			Name:    "choco",
			Install: map[string]domain.Recipe{"windows": {Command: "powershell"}},
		},
	}
	inst := New(newFakeResolver(), &recordingRunner{}, WithTools(tools), withGOOS("linux"))

	err := inst.Ensure(context.Background(), "choco")

	assert.ErrorIs(t, err, domain.ErrNoRecipe)
}

func TestEnsure_EmptyName(t *testing.T) {
	inst := New(newFakeResolver(), &recordingRunner{})

	var failed *domain.InstallationFailedError
	assert.True(t, errors.As(inst.Ensure(context.Background(), "  "), &failed))
}

func TestEnsure_UnregisteredToolResolvable(t *testing.T) {
	// Tools outside the registry can still be checked; present means no-op.
	resolver := newFakeResolver("git")
	runner := &recordingRunner{}
	inst := New(resolver, runner, withGOOS("linux"))

	assert.NoError(t, inst.Ensure(context.Background(), "git"))
	assert.Zero(t, runner.calls())
}

func TestEnsure_UnregisteredToolMissing(t *testing.T) {
	inst := New(newFakeResolver(), &recordingRunner{}, withGOOS("linux"))

	err := inst.Ensure(context.Background(), "git")
	assert.ErrorIs(t, err, domain.ErrNoRecipe)
}

func TestEnsure_ConcurrentCallersInstallOnce(t *testing.T) {
	resolver := newFakeResolver()
	runner := &recordingRunner{
		onRun: func(domain.CommandSpec) error {
			time.Sleep(20 * time.Millisecond) // hold the lock long enough to contend
			resolver.add("choco")
			return nil
		},
	}
	inst := New(resolver, runner, WithTools(testTools()), withGOOS("linux"))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = inst.Ensure(context.Background(), "choco")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, runner.calls(), "the double-check under the lock must dedupe installs")
}

func TestEnsure_FiresLifecycleHooks(t *testing.T) {
	resolver := newFakeResolver()
	runner := &recordingRunner{
		onRun: func(domain.CommandSpec) error {
			resolver.add("choco")
			return nil
		},
	}

	var started, finished []string
	hooks := domain.LifecycleHooks{
		OnInstallStart: func(_ context.Context, ev *domain.InstallEvent) {
			started = append(started, ev.Tool)
		},
		OnInstallFinish: func(_ context.Context, ev *domain.InstallEvent) {
			finished = append(finished, ev.Tool)
			assert.NoError(t, ev.Err)
		},
	}
	inst := New(resolver, runner, WithTools(testTools()), WithHooks(hooks), withGOOS("linux"))

	require.NoError(t, inst.Ensure(context.Background(), "choco"))
	assert.Equal(t, []string{"choco"}, started)
	assert.Equal(t, []string{"choco"}, finished)
}

func TestBuiltins(t *testing.T) {
	tools := Builtins()

	require.Contains(t, tools, "choco")
	require.Contains(t, tools, "winget")

	r, ok := tools["winget"].RecipeFor("windows")
	require.True(t, ok)
	assert.Equal(t, "choco", r.Command)
	assert.Equal(t, []string{"install", "winget", "-y", "--force"}, r.Args)

	_, ok = tools["choco"].RecipeFor("linux")
	assert.False(t, ok, "chocolatey bootstrap is windows only")
}
