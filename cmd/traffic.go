// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ripred/github-traffic/internal/config"
	"github.com/ripred/github-traffic/internal/domain"
	"github.com/ripred/github-traffic/internal/gateway"
	"github.com/ripred/github-traffic/internal/report"
	"github.com/ripred/github-traffic/internal/usecase"
	"github.com/spf13/cobra"
)

var trafficCmd = &cobra.Command{
	Use:   "traffic",
	Short: "Fetches and ranks repository traffic for the configured user",
	Long: `Fetches views, clones, stars and forks for every repository of the user
configured in credentials.ini, ranks them by the chosen metric and prints a
summary table. Traffic data covers the 14-day window the GitHub API provides.`,
	Example: `  github-traffic traffic                       # default: ranked by combined_metrics
  github-traffic traffic -z                    # exclude repos with zero views
  github-traffic traffic -e -c                 # hide empty repos and save a CSV
  github-traffic traffic -s views_total        # sort by total views
  github-traffic traffic -z -s clones_unique   # only repos with views, by unique clones`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		hideEmpty, _ := cmd.Flags().GetBool("hide-empty")
		noZeroViews, _ := cmd.Flags().GetBool("no-zero-views")
		writeCSV, _ := cmd.Flags().GetBool("write-csv")
		sortByValue, _ := cmd.Flags().GetString("sort-by")
		timeframe, _ := cmd.Flags().GetInt("timeframe")

		sortBy, err := domain.ParseSortKey(sortByValue)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		creds, err := config.Load(config.DefaultPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// The API only serves the last 14 days; larger requests are clamped.
		days, clamped := domain.ClampTimeframe(timeframe)
		if clamped {
			fmt.Printf("Note: GitHub API only provides traffic data for the last %d days. Requested %d days, using maximum of %d days.\n",
				domain.TrafficWindowDays, timeframe, days)
		}

		fetcher, err := gateway.NewGitHubGateway(creds.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Starting GitHub traffic analysis for user: %s\n", creds.Username)
		fmt.Printf("Using timeframe of %d days\n", days)

		if err := fetcher.CheckAuth(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Please check that your token is valid.")
			os.Exit(1)
		}

		repos, err := fetcher.ListRepositories(ctx, creds.Username)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Found %d repositories to examine\n", len(repos))
		if len(repos) == 0 {
			return
		}

		if !fetcher.ProbeTrafficAccess(ctx, creds.Username, repos[0].Name) {
			fmt.Println()
			fmt.Println("WARNING: Your token doesn't have permission to access traffic data.")
			fmt.Println("The run will continue but will only show stars and forks.")
			fmt.Println("To access traffic data, generate a new token with the 'repo' scope.")
			fmt.Println()
		}

		collector := usecase.NewCollector(fetcher, logger, os.Stdout)
		records := collector.Collect(ctx, creds.Username, repos)

		ranked := usecase.Rank(records, usecase.RankOptions{
			SortBy:      sortBy,
			HideEmpty:   hideEmpty,
			NoZeroViews: noZeroViews,
		})

		fmt.Println()
		report.RenderTable(os.Stdout, ranked, sortBy, timeframe)

		if writeCSV {
			filename := report.CSVFilename(time.Now())
			if err := report.WriteCSV(filename, ranked); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\nTraffic data saved to %s\n", filename)
		}
	},
}

func init() {
	rootCmd.AddCommand(trafficCmd)
	trafficCmd.Flags().BoolP("hide-empty", "e", false, "Hide repositories with all metrics equal to zero")
	trafficCmd.Flags().BoolP("no-zero-views", "z", false, "Exclude repositories with zero views from the output")
	trafficCmd.Flags().BoolP("write-csv", "c", false, "Write results to a CSV file")
	trafficCmd.Flags().StringP("sort-by", "s", string(domain.SortCombined),
		"Sort results by a specific metric ("+strings.Join(domain.SortKeyNames(), ", ")+")")
	trafficCmd.Flags().IntP("timeframe", "t", domain.TrafficWindowDays,
		"Timeframe for reports in days (GitHub API maximum is 14)")
}
