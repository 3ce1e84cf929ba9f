// Package observability collects run and install outcomes for Prometheus
// exposition. It adapts the collectors into domain.LifecycleHooks so the
// toolkit core never imports a metrics library.
package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/spade/pkg/domain"
)

// Metrics holds the Spade collectors.
type Metrics struct {
	runs       *prometheus.CounterVec
	installs   *prometheus.CounterVec
	runSeconds prometheus.Histogram
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spade_runs_total",
			Help: "External command executions by outcome.",
		}, []string{"outcome"}),
		installs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "spade_installs_total",
			Help: "Prerequisite install attempts by result.",
		}, []string{"result"}),
		runSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "spade_run_duration_seconds",
			Help: "Wall time of external command executions.",
			// Installs routinely take minutes, so the upper buckets are wide.
			Buckets: prometheus.ExponentialBuckets(0.05, 4, 9),
		}),
	}
	reg.MustRegister(m.runs, m.installs, m.runSeconds)
	return m
}

// Hooks adapts the metrics into lifecycle hooks for the toolkit.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnInstallFinish: func(_ context.Context, ev *domain.InstallEvent) {
			result := "ok"
			if ev.Err != nil {
				result = "failed"
			}
			m.installs.WithLabelValues(result).Inc()
		},
		OnRunFinish: func(_ context.Context, ev *domain.RunEvent) {
			m.runSeconds.Observe(ev.Outcome.Duration.Seconds())
			m.runs.WithLabelValues(outcomeLabel(ev.Err)).Inc()
		},
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isNonZeroExit(err):
		return "nonzero_exit"
	default:
		return "launch_failed"
	}
}

func isNonZeroExit(err error) bool {
	var nz *domain.NonZeroExitError
	return errors.As(err, &nz)
}
