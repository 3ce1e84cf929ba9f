package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of spade",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("spade version %s\n", strings.TrimSpace(spade.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
