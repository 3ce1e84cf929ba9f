package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
)

// ensureCmd represents the ensure command
var ensureCmd = &cobra.Command{
	Use:   "ensure <tool>",
	Short: "Install a prerequisite tool if it is not already on the path",
	Long: `Checks whether the named tool is resolvable on the execution path.
If it is, nothing happens. If not, its platform install recipe runs exactly
once and the tool is re-verified.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Ensure(rootOptions(cmd), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s is ready ✅\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(ensureCmd)
}
