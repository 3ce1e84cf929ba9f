package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Execute an external command and propagate its exit code",
	Long: `Starts the named executable attached to the current console and blocks
until it terminates. The child's exit code becomes spade's exit code. Use
"--" to stop flag parsing before the command's own flags.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		detach, _ := cmd.Flags().GetBool("detach")
		window, _ := cmd.Flags().GetBool("window")
		ensure, _ := cmd.Flags().GetString("ensure")

		code, err := cli.Run(rootOptions(cmd), cli.RunOptions{
			Command: args[0],
			Args:    args[1:],
			Dir:     dir,
			Detach:  detach,
			Window:  window,
			Ensure:  ensure,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("dir", "", "Working directory for the command")
	runCmd.Flags().Bool("detach", false, "Start the command without waiting for completion")
	runCmd.Flags().Bool("window", false, "Launch the command in a new terminal window")
	runCmd.Flags().String("ensure", "", "Prerequisite tool ensured before the command runs")
}
