//go:build !windows

package process

import (
	"os"
	"os/exec"

	"github.com/aretw0/spade/pkg/domain"
)

// windowedCommand picks a terminal emulator for NewWindow launches.
// $TERMINAL wins, then x-terminal-emulator (Debian alternatives), then a
// short list of common emulators. With nothing available the command runs
// attached to the current console instead of failing.
func windowedCommand(spec domain.CommandSpec) (string, []string) {
	term := os.Getenv("TERMINAL")
	if term == "" {
		for _, cand := range []string{"x-terminal-emulator", "gnome-terminal", "konsole", "xterm"} {
			if _, err := exec.LookPath(cand); err == nil {
				term = cand
				break
			}
		}
	}
	if term == "" {
		return spec.Name, spec.Args
	}
	args := append([]string{"-e", spec.Name}, spec.Args...)
	return term, args
}
