package main

import (
	"fmt"

	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/dataset"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	Long: `Parse the dataset and print monthly averages, the weather distribution
by day type and the working/non-working split as JSON.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("data", "", "dataset CSV path (default: embedded dataset)")
	statsCmd.Flags().String("log-level", "warn", "log level")
}

func runStats(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("data")
	level, _ := cmd.Flags().GetString("log-level")

	logger, err := config.NewLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store := dataset.NewStore(path, logger)
	if _, err := store.Load(); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	snapshot := store.Snapshot()
	return writeJSON(cmd.OutOrStdout(), services.Summarize(snapshot.Records, snapshot.Version))
}
