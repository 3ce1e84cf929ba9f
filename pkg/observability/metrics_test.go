package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/spade/pkg/domain"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRunFinish(ctx, &domain.RunEvent{
		Spec:    domain.CommandSpec{Name: "echo"},
		Outcome: domain.Outcome{Duration: 50 * time.Millisecond},
	})
	hooks.OnRunFinish(ctx, &domain.RunEvent{
		Spec:    domain.CommandSpec{Name: "choco"},
		Outcome: domain.Outcome{ExitCode: 1},
		Err:     &domain.NonZeroExitError{Name: "choco", ExitCode: 1},
	})
	hooks.OnRunFinish(ctx, &domain.RunEvent{
		Spec: domain.CommandSpec{Name: "nope"},
		Err:  &domain.LaunchFailedError{Name: "nope", Err: errors.New("not found")},
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("nonzero_exit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs.WithLabelValues("launch_failed")))
}

func TestMetrics_CountsInstalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnInstallFinish(ctx, &domain.InstallEvent{Tool: "choco"})
	hooks.OnInstallFinish(ctx, &domain.InstallEvent{Tool: "winget", Err: errors.New("boom")})
	hooks.OnInstallFinish(ctx, &domain.InstallEvent{Tool: "brew"})

	assert.Equal(t, float64(2), testutil.ToFloat64(m.installs.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.installs.WithLabelValues("failed")))
}
