// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-traffic",
	Short: "A CLI tool to analyze GitHub repository traffic.",
	Long: `github-traffic queries the GitHub API for per-repository traffic metrics
(views, clones, stars, forks) of a user, ranks the repositories by a weighted
combined metric and prints the result as a table, optionally writing a CSV
snapshot.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
