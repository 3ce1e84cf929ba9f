package domain

import (
	"strings"
	"time"
)

// CommandSpec describes a single external process invocation.
// It is immutable by convention: build one per invocation and discard it
// after the process exits.
type CommandSpec struct {
	Name      string            `yaml:"command" json:"command" mapstructure:"command"`
	Args      []string          `yaml:"args,omitempty" json:"args,omitempty" mapstructure:"args"`
	Dir       string            `yaml:"dir,omitempty" json:"dir,omitempty" mapstructure:"dir"`
	Env       map[string]string `yaml:"env,omitempty" json:"env,omitempty" mapstructure:"env"`
	Wait      bool              `yaml:"wait" json:"wait" mapstructure:"wait"`
	NewWindow bool              `yaml:"new_window" json:"new_window" mapstructure:"new_window"`
}

// Validate checks the single invariant a spec carries: a non-empty executable name.
func (s CommandSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyCommand
	}
	return nil
}

// String renders the spec as a shell-like command line for logs and progress output.
func (s CommandSpec) String() string {
	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// Outcome reports how a finished process terminated.
type Outcome struct {
	ExitCode int
	Duration time.Duration
}
