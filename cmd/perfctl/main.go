// Package main implements perfctl, an offline runner for the performance
// analytics engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobtracker-backend/internal/shared/telemetry"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "perfctl",
	Short: "Compute job search performance snapshots from exported records",
	Long:  "perfctl reads exported job records and goals, runs the analytics engine and writes the snapshot as JSON.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		telemetry.Configure(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func main() {
	_ = godotenv.Load()
	defer telemetry.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
