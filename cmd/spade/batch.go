package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run many commands from a batch file with bounded concurrency",
	Long: `Reads a YAML batch file, ensures its shared prerequisites, and runs every
task over a worker pool. Failed tasks are reported, not retried; spade exits
non-zero when any task failed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		workers, _ := cmd.Flags().GetInt("workers")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

		failed, err := cli.Batch(rootOptions(cmd), cli.BatchOptions{
			File:        args[0],
			Workers:     workers,
			MetricsAddr: metricsAddr,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "Worker pool size (overrides the batch file)")
	batchCmd.Flags().String("metrics-addr", "", "Expose Prometheus metrics on this address while the batch runs")
}
