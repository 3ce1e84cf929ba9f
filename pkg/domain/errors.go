package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand is returned when a CommandSpec carries no executable name.
var ErrEmptyCommand = errors.New("command spec has no executable name")

// ErrToolUnresolvable is returned when a tool cannot be located on the execution path.
var ErrToolUnresolvable = errors.New("tool not resolvable on path")

// ErrNoRecipe is returned when no install recipe exists for the current platform.
var ErrNoRecipe = errors.New("no install recipe for platform")

// ErrUnknownFix is returned when a maintenance action name is not registered.
var ErrUnknownFix = errors.New("unknown fix action")

// InstallationFailedError signals that a prerequisite tool could not be
// installed or verified. The caller decides whether to abort or proceed.
type InstallationFailedError struct {
	Tool string
	Err  error
}

func (e *InstallationFailedError) Error() string {
	return fmt.Sprintf("installation of %q failed: %v", e.Tool, e.Err)
}

func (e *InstallationFailedError) Unwrap() error { return e.Err }

// LaunchFailedError signals that an executable could not be found or started.
type LaunchFailedError struct {
	Name string
	Err  error
}

func (e *LaunchFailedError) Error() string {
	return fmt.Sprintf("failed to launch %q: %v", e.Name, e.Err)
}

func (e *LaunchFailedError) Unwrap() error { return e.Err }

// NonZeroExitError signals that a process ran to completion but reported failure.
// It carries the exit code; the run is reported, never retried.
type NonZeroExitError struct {
	Name     string
	ExitCode int
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.ExitCode)
}
