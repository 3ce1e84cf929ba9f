package spade

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/spade/internal/logging"
	"github.com/aretw0/spade/pkg/adapters/lookpath"
	"github.com/aretw0/spade/pkg/adapters/process"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/installer"
	"github.com/aretw0/spade/pkg/ports"
)

// Version is the toolkit release, overridable at build time via -ldflags.
var Version = "0.1.0"

// Toolkit is the high-level entry point for the Spade library.
// It wires the resolver, runner and installer together and provides the
// simplified API a host menu or automation system calls.
type Toolkit struct {
	resolver ports.PathResolver
	runner   ports.CommandRunner
	locker   ports.InstallLocker
	ensurer  ports.PrerequisiteEnsurer
	tools    map[string]domain.Tool
	fixes    map[string]FixAction
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Toolkit.
type Option func(*Toolkit)

// WithResolver injects a custom PathResolver, bypassing the real PATH lookup.
func WithResolver(r ports.PathResolver) Option {
	return func(t *Toolkit) {
		t.resolver = r
	}
}

// WithRunner injects a custom CommandRunner.
func WithRunner(r ports.CommandRunner) Option {
	return func(t *Toolkit) {
		t.runner = r
	}
}

// WithLocker enables a specific install lock (e.g. the Redis adapter).
// The default is an in-process lock.
func WithLocker(l ports.InstallLocker) Option {
	return func(t *Toolkit) {
		t.locker = l
	}
}

// WithTools sets the tool registry. Entries override the builtins by name.
func WithTools(tools map[string]domain.Tool) Option {
	return func(t *Toolkit) {
		t.tools = tools
	}
}

// WithFix registers (or overrides) a maintenance action.
func WithFix(fix FixAction) Option {
	return func(t *Toolkit) {
		t.fixes[fix.Name] = fix
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Toolkit) {
		t.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the toolkit.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// New initializes a new Spade Toolkit.
// With no options it talks to the real host: exec.LookPath resolution, an
// os/exec runner attached to the current console, and built-in recipes.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		fixes:  Fixes(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.resolver == nil {
		t.resolver = lookpath.New()
	}
	if t.runner == nil {
		t.runner = process.NewRunner(process.WithLogger(t.logger))
	}
	if t.tools == nil {
		t.tools = installer.Builtins()
	}

	instOpts := []installer.Option{
		installer.WithTools(t.tools),
		installer.WithHooks(t.hooks),
		installer.WithLogger(t.logger),
	}
	if t.locker != nil {
		instOpts = append(instOpts, installer.WithLocker(t.locker))
	}
	t.ensurer = installer.New(t.resolver, t.runner, instOpts...)

	return t
}

// Ensure guarantees the named tool is invocable, installing it if absent.
func (t *Toolkit) Ensure(ctx context.Context, tool string) error {
	return t.ensurer.Ensure(ctx, tool)
}

// Run executes one external command to completion and reports its outcome.
func (t *Toolkit) Run(ctx context.Context, spec domain.CommandSpec) (domain.Outcome, error) {
	outcome, err := t.runner.Run(ctx, spec)
	if t.hooks.OnRunFinish != nil {
		t.hooks.OnRunFinish(ctx, &domain.RunEvent{
			Timestamp: time.Now(),
			Spec:      spec,
			Outcome:   outcome,
			Err:       err,
		})
	}
	return outcome, err
}

// Fix executes a named maintenance action: ensure the prerequisite, then run
// the dependent command. Failures from either step propagate unchanged, and
// a failed Ensure means the command is never attempted.
func (t *Toolkit) Fix(ctx context.Context, name string) error {
	fix, ok := t.fixes[name]
	if !ok {
		return domain.ErrUnknownFix
	}
	if fix.Requires != "" {
		if err := t.Ensure(ctx, fix.Requires); err != nil {
			return err
		}
	}
	_, err := t.Run(ctx, fix.Spec)
	return err
}

// FixActions lists the registered maintenance actions.
func (t *Toolkit) FixActions() map[string]FixAction {
	actions := make(map[string]FixAction, len(t.fixes))
	for name, fix := range t.fixes {
		actions[name] = fix
	}
	return actions
}

// Tools returns the tool registry in use.
func (t *Toolkit) Tools() map[string]domain.Tool {
	return t.tools
}

// Resolver returns the underlying PathResolver used by the toolkit.
func (t *Toolkit) Resolver() ports.PathResolver {
	return t.resolver
}
