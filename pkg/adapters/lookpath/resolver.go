// Package lookpath implements ports.PathResolver on top of exec.LookPath,
// i.e. the host's real executable-search mechanism.
package lookpath

import "os/exec"

// Resolver resolves executables against the current process PATH.
type Resolver struct{}

// New creates a new Resolver.
func New() Resolver { return Resolver{} }

// Resolve returns the absolute path of name as found on the execution path.
func (Resolver) Resolve(name string) (string, error) {
	return exec.LookPath(name)
}
