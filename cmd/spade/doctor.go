package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
	"github.com/aretw0/spade/internal/presentation/tui"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which configured tools are resolvable",
	Run: func(cmd *cobra.Command, args []string) {
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		if !noBanner {
			tui.PrintBanner()
		}
		if err := cli.Doctor(rootOptions(cmd), os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().Bool("no-banner", false, "Skip the ASCII banner")
}
