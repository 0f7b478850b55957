// Package app contains the Cobra command tree for workpulse.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "workpulse",
	Short: "Session aggregation engine for workforce activity telemetry",
	Long: `workpulse converts raw activity samples captured by a desktop agent
into fixed-length productivity sessions with derived behavioral metrics:
productivity, focus, and efficiency scores, categorized app and website
summaries, and narrative insights.

Run 'workpulse aggregate' to process pending samples, or 'workpulse watch'
to keep aggregating on a schedule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("workpulse", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  aggregate  Aggregate pending raw samples into sessions")
		fmt.Println("  ingest     Load capture-agent sample files into the store")
		fmt.Println("  sessions   List aggregated sessions for a user")
		fmt.Println("  watch      Run aggregation on a recurring schedule")
		fmt.Println("  doctor     Check database and configuration health")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/workpulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
