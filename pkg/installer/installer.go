// Package installer guarantees that prerequisite tools are invocable before
// dependent actions run. The sequence is check -> [lock -> recheck ->
// install] -> verify: one clean attempt, never a retry.
package installer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/aretw0/spade/internal/logging"
	"github.com/aretw0/spade/pkg/adapters/memory"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/ports"
)

// PrerequisiteInstaller implements ports.PrerequisiteEnsurer.
type PrerequisiteInstaller struct {
	resolver ports.PathResolver
	runner   ports.CommandRunner
	locker   ports.InstallLocker
	tools    map[string]domain.Tool
	goos     string
	lockTTL  time.Duration
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures the installer.
type Option func(*PrerequisiteInstaller)

// WithLocker replaces the default in-process lock, e.g. with the Redis
// adapter when several agents can race to install the same tool.
func WithLocker(locker ports.InstallLocker) Option {
	return func(p *PrerequisiteInstaller) {
		p.locker = locker
	}
}

// WithTools sets the tool registry used to look up install recipes.
func WithTools(tools map[string]domain.Tool) Option {
	return func(p *PrerequisiteInstaller) {
		p.tools = tools
	}
}

// WithLockTTL bounds how long a crashed holder can keep the install lock.
func WithLockTTL(ttl time.Duration) Option {
	return func(p *PrerequisiteInstaller) {
		p.lockTTL = ttl
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(p *PrerequisiteInstaller) {
		p.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *PrerequisiteInstaller) {
		p.logger = logger
	}
}

// withGOOS overrides platform detection. Test hook only.
func withGOOS(goos string) Option {
	return func(p *PrerequisiteInstaller) {
		p.goos = goos
	}
}

// New creates a PrerequisiteInstaller around the given resolver and runner.
func New(resolver ports.PathResolver, runner ports.CommandRunner, opts ...Option) *PrerequisiteInstaller {
	p := &PrerequisiteInstaller{
		resolver: resolver,
		runner:   runner,
		locker:   memory.NewLocker(),
		tools:    Builtins(),
		goos:     runtime.GOOS,
		lockTTL:  5 * time.Minute,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ensure checks whether the named tool is resolvable on the execution path
// and, if not, runs its platform install recipe exactly once and re-verifies.
// A tool already present causes no side effect, which keeps Ensure idempotent.
func (p *PrerequisiteInstaller) Ensure(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &domain.InstallationFailedError{Tool: name, Err: fmt.Errorf("tool name must not be empty")}
	}

	tool, ok := p.tools[name]
	if !ok {
		// Unregistered tools can still be checked, just not installed.
		tool = domain.Tool{Name: name}
	}

	if path, err := p.resolver.Resolve(tool.Executable()); err == nil {
		p.logger.Debug("tool already resolvable", "tool", name, "path", path)
		return nil
	}

	// The check-then-act sequence is guarded by an advisory lock so
	// concurrent callers do not race to install the same prerequisite.
	unlock, err := p.locker.Lock(ctx, name, p.lockTTL)
	if err != nil {
		return &domain.InstallationFailedError{Tool: name, Err: err}
	}
	defer func() {
		// Release even when ctx was canceled mid-install.
		if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
			p.logger.Warn("failed to release install lock", "tool", name, "err", uerr)
		}
	}()

	// Another caller may have finished the install while we waited on the lock.
	if _, err := p.resolver.Resolve(tool.Executable()); err == nil {
		p.logger.Debug("tool installed elsewhere while waiting", "tool", name)
		return nil
	}

	event := &domain.InstallEvent{Timestamp: time.Now(), Tool: name}
	if p.hooks.OnInstallStart != nil {
		p.hooks.OnInstallStart(ctx, event)
	}

	err = p.install(ctx, tool)

	event.Err = err
	if p.hooks.OnInstallFinish != nil {
		p.hooks.OnInstallFinish(ctx, event)
	}
	if err != nil {
		return &domain.InstallationFailedError{Tool: name, Err: err}
	}
	return nil
}

// install runs the platform recipe and verifies the tool became resolvable.
func (p *PrerequisiteInstaller) install(ctx context.Context, tool domain.Tool) error {
	recipe, ok := tool.RecipeFor(p.goos)
	if !ok {
		return fmt.Errorf("%w %s", domain.ErrNoRecipe, p.goos)
	}

	p.logger.Info("installing prerequisite", "tool", tool.Name, "cmd", recipe.Spec().String())
	if _, err := p.runner.Run(ctx, recipe.Spec()); err != nil {
		return err
	}

	// Post-install verification: the recipe is expected to have placed the
	// tool on the execution path.
	if _, err := p.resolver.Resolve(tool.Executable()); err != nil {
		return fmt.Errorf("%w after install: %v", domain.ErrToolUnresolvable, err)
	}

	p.logger.Info("prerequisite installed", "tool", tool.Name)
	return nil
}
