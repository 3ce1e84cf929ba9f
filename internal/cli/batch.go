package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/spade"
	"github.com/aretw0/spade/internal/metrics"
	"github.com/aretw0/spade/pkg/batch"
	"github.com/aretw0/spade/pkg/domain"
	"github.com/aretw0/spade/pkg/observability"
)

// BatchFile is the on-disk format for 'spade batch'.
type BatchFile struct {
	Workers int         `yaml:"workers"`
	Ensure  []string    `yaml:"ensure"` // Prerequisites installed before any task runs
	Tasks   []BatchTask `yaml:"tasks"`
}

// BatchTask is one entry of a batch file.
type BatchTask struct {
	Label   string   `yaml:"label"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Dir     string   `yaml:"dir"`
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	File        string
	Workers     int    // Overrides the file's worker count when > 0
	MetricsAddr string // Expose /metrics while the batch runs
}

// LoadBatchFile parses a batch definition.
func LoadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(bf.Tasks) == 0 {
		return nil, fmt.Errorf("batch file has no tasks")
	}
	for i, t := range bf.Tasks {
		if t.Command == "" {
			return nil, fmt.Errorf("batch task %d has no command", i)
		}
	}
	return &bf, nil
}

// Batch handles the 'batch' command: ensure the shared prerequisites, then
// run every task over a bounded worker pool. Returns the number of failures.
func Batch(opts Options, batchOpts BatchOptions) (int, error) {
	bf, err := LoadBatchFile(batchOpts.File)
	if err != nil {
		return 0, err
	}

	reg := prometheus.NewRegistry()
	obs := observability.NewMetrics(reg)

	tk, logger, err := NewToolkit(opts, spade.WithLifecycleHooks(obs.Hooks()))
	if err != nil {
		return 0, err
	}

	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	if batchOpts.MetricsAddr != "" {
		go func() {
			if serr := metrics.Serve(sc, batchOpts.MetricsAddr, reg, logger); serr != nil {
				logger.Warn("metrics server failed", "err", serr)
			}
		}()
	}

	for _, tool := range bf.Ensure {
		if err := tk.Ensure(sc, tool); err != nil {
			return 0, err
		}
	}

	workers := bf.Workers
	if batchOpts.Workers > 0 {
		workers = batchOpts.Workers
	}

	tasks := make([]batch.Task, 0, len(bf.Tasks))
	for _, t := range bf.Tasks {
		label := t.Label
		if label == "" {
			label = t.Command
		}
		tasks = append(tasks, batch.Task{
			Label: label,
			Spec: domain.CommandSpec{
				Name: t.Command,
				Args: t.Args,
				Dir:  t.Dir,
				Wait: true,
			},
		})
	}

	pool := batch.New(tk,
		batch.WithWorkers(workers),
		batch.WithLogger(logger),
	)
	results := pool.Run(sc, tasks)

	failed := batch.Failed(results)
	if sig := sc.Signal(); sig != nil {
		logger.Warn("batch interrupted", "signal", sig.String())
	}
	logger.Info("batch finished", "tasks", len(results), "failed", len(failed))
	return len(failed), nil
}
