//go:build windows

package process

import "github.com/aretw0/spade/pkg/domain"

// windowedCommand rewrites the spec so Windows opens a real console window.
// "start" is a cmd builtin; /wait keeps the parent blocked when the spec
// asks for synchronous completion.
func windowedCommand(spec domain.CommandSpec) (string, []string) {
	// The first quoted argument to start is the window title; pass an empty
	// one so executables with spaces in their path are not mistaken for it.
	args := []string{"/c", "start", ""}
	if spec.Wait {
		args = append(args, "/wait")
	}
	args = append(args, spec.Name)
	args = append(args, spec.Args...)
	return "cmd", args
}
