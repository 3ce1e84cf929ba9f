package domain

import (
	"context"
	"time"
)

// InstallEvent describes one prerequisite install attempt.
type InstallEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Tool      string    `json:"tool"`
	Err       error     `json:"-"`
}

// RunEvent describes one completed external command execution.
type RunEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Spec      CommandSpec `json:"spec"`
	Outcome   Outcome     `json:"outcome"`
	Err       error       `json:"-"`
}

// LifecycleHooks defines callbacks for toolkit observability.
// Nil hooks are skipped, so the zero value disables instrumentation.
type LifecycleHooks struct {
	OnInstallStart  func(context.Context, *InstallEvent)
	OnInstallFinish func(context.Context, *InstallEvent)
	OnRunFinish     func(context.Context, *RunEvent)
}
