package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/spade/pkg/domain"
)

// Ensure handles the 'ensure' command: install the tool if it is missing.
func Ensure(opts Options, tool string) error {
	tk, _, err := NewToolkit(opts)
	if err != nil {
		return err
	}
	return tk.Ensure(context.Background(), tool)
}

// RunOptions configures a single 'run' invocation.
type RunOptions struct {
	Command string
	Args    []string
	Dir     string
	Detach  bool     // Do not wait for completion
	Window  bool     // Launch in a new terminal window
	Ensure  string   // Optional prerequisite ensured before the run
}

// Run handles the 'run' command. The returned exit code mirrors the child
// process so callers can propagate it to the shell.
func Run(opts Options, runOpts RunOptions) (int, error) {
	tk, _, err := NewToolkit(opts)
	if err != nil {
		return 1, err
	}

	ctx := context.Background()
	if runOpts.Ensure != "" {
		if err := tk.Ensure(ctx, runOpts.Ensure); err != nil {
			return 1, err
		}
	}

	spec := domain.CommandSpec{
		Name:      runOpts.Command,
		Args:      runOpts.Args,
		Dir:       runOpts.Dir,
		Wait:      !runOpts.Detach,
		NewWindow: runOpts.Window,
	}

	outcome, err := tk.Run(ctx, spec)
	if err != nil {
		var nz *domain.NonZeroExitError
		if errors.As(err, &nz) {
			// The child ran and failed; its exit code is the answer.
			return nz.ExitCode, err
		}
		return 1, err
	}
	return outcome.ExitCode, nil
}

// Fix handles the 'fix' command for a named maintenance action.
func Fix(opts Options, action string) error {
	tk, logger, err := NewToolkit(opts)
	if err != nil {
		return err
	}
	logger.Info("running fix", "action", action)
	return tk.Fix(context.Background(), action)
}

// ListFixes prints the registered maintenance actions, sorted by name.
func ListFixes(opts Options, out io.Writer) error {
	tk, _, err := NewToolkit(opts)
	if err != nil {
		return err
	}

	actions := tk.FixActions()
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Available fixes:")
	for _, name := range names {
		fmt.Fprintf(out, "  %-12s %s\n", name, actions[name].Description)
	}
	return nil
}
