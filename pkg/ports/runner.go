package ports

import (
	"context"

	"github.com/aretw0/spade/pkg/domain"
)

// CommandRunner executes one external command and reports its outcome.
type CommandRunner interface {
	// Run starts the process described by spec and, when spec.Wait is set,
	// blocks until it terminates. Blocking is unbounded unless the caller
	// bounds ctx. The Outcome carries the exit code; a failure exit is also
	// reported as *domain.NonZeroExitError, and a process that could not be
	// found or started as *domain.LaunchFailedError.
	Run(ctx context.Context, spec domain.CommandSpec) (domain.Outcome, error)
}

// PrerequisiteEnsurer guarantees a named tool is invocable before the caller
// proceeds, installing it via a platform-appropriate mechanism if absent.
type PrerequisiteEnsurer interface {
	// Ensure is idempotent: a tool already resolvable on the path causes no
	// side effect. Failures surface as *domain.InstallationFailedError.
	Ensure(ctx context.Context, tool string) error
}
