package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/spade/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "spade",
	Short: "Spade keeps prerequisite tools installed and runs commands that depend on them",
	Long: `Spade is a dependency-ensuring command runner: it checks that a prerequisite
tool (like a package manager) is resolvable on the execution path, installs it
if absent, and then executes external commands synchronously, surfacing their
exit status.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("tools", "tools.yaml", "Path to the tool registry file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log verbosity (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL enabling the distributed install lock")
}

// rootOptions extracts the persistent flags into cli.Options.
func rootOptions(cmd *cobra.Command) cli.Options {
	toolsPath, _ := cmd.Flags().GetString("tools")
	logLevel, _ := cmd.Flags().GetString("log-level")
	redisURL, _ := cmd.Flags().GetString("redis-url")

	// Smart default: only read tools.yaml when it actually exists, so a bare
	// checkout works on the builtins alone.
	if !cmd.Flags().Changed("tools") {
		if _, err := os.Stat(toolsPath); err != nil {
			toolsPath = ""
		}
	}

	return cli.Options{
		ToolsPath: toolsPath,
		LogLevel:  logLevel,
		RedisURL:  redisURL,
	}
}
