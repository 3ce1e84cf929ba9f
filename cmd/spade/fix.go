package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
)

// fixCmd represents the fix command
var fixCmd = &cobra.Command{
	Use:   "fix [action]",
	Short: "Run a one-shot maintenance action",
	Long: `Runs a named maintenance action: the action's prerequisite is ensured
first, then its repair command executes. With no action given, the registered
actions are listed. The built-in "winget" action reinstalls the winget client
via Chocolatey.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := rootOptions(cmd)
		if len(args) == 0 {
			if err := cli.ListFixes(opts, os.Stdout); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		if err := cli.Fix(opts, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("fix %s applied ✅\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
