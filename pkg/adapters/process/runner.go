// Package process implements ports.CommandRunner using os/exec, plus the
// tools.yaml registry loader. Processes inherit the parent's console by
// default so interactive installers keep working.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/aretw0/spade/internal/logging"
	"github.com/aretw0/spade/pkg/domain"
)

// Runner executes local processes synchronously.
type Runner struct {
	baseDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the default working directory for executed processes.
// A per-spec Dir still wins.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithStdio overrides the streams spawned processes inherit.
// Tests use this to silence or inspect output.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets a structured logger for process lifecycle events.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process Runner attached to the current console.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the process described by spec. With spec.Wait set it blocks the
// calling control path until the process terminates; blocking is unbounded
// unless the caller bounds ctx. Stdout and stderr pass through untouched.
func (r *Runner) Run(ctx context.Context, spec domain.CommandSpec) (domain.Outcome, error) {
	if err := spec.Validate(); err != nil {
		return domain.Outcome{}, err
	}

	if spec.NewWindow {
		// Rewrite the spec to go through the platform's terminal launcher.
		name, args := windowedCommand(spec)
		spec.Name = name
		spec.Args = args
		spec.NewWindow = false
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = r.baseDir
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Env = mergedEnv(spec.Env)

	r.logger.Debug("starting process", "cmd", spec.Name, "args", spec.Args, "wait", spec.Wait)
	start := time.Now()

	if !spec.Wait {
		if err := cmd.Start(); err != nil {
			return domain.Outcome{}, &domain.LaunchFailedError{Name: spec.Name, Err: err}
		}
		// Fire-and-monitor: reap the child in the background so it never zombies.
		go func() {
			if werr := cmd.Wait(); werr != nil {
				r.logger.Warn("detached process exited with error", "cmd", spec.Name, "err", werr)
			}
		}()
		return domain.Outcome{Duration: time.Since(start)}, nil
	}

	err := cmd.Run()
	outcome := domain.Outcome{Duration: time.Since(start)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			return outcome, &domain.NonZeroExitError{Name: spec.Name, ExitCode: outcome.ExitCode}
		}
		return outcome, &domain.LaunchFailedError{Name: spec.Name, Err: err}
	}
	return outcome, nil
}

// Capture runs the spec with stdout collected instead of streamed.
// The doctor report uses it to probe tool versions quietly.
func (r *Runner) Capture(ctx context.Context, spec domain.CommandSpec) (string, domain.Outcome, error) {
	var buf bytes.Buffer
	probe := *r
	probe.stdout = &buf
	probe.stderr = io.Discard
	probe.stdin = nil
	outcome, err := probe.Run(ctx, spec)
	return buf.String(), outcome, err
}

// mergedEnv layers the spec's environment over the parent's.
// Keys are emitted in sorted order so logs stay stable.
func mergedEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return nil // nil means "inherit", per os/exec
	}
	env := os.Environ()
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, extra[k]))
	}
	return env
}
