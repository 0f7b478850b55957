package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/workpulse/workpulse/internal/batch"
	"github.com/workpulse/workpulse/internal/classify"
	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/output"
	"github.com/workpulse/workpulse/internal/store"
)

var (
	aggInterval int
	aggLookback int
	aggWorkers  int
	aggDryRun   bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate pending raw samples into sessions",
	Long: `Discover users with eligible raw samples in the lookback window, fold
each user's samples into aligned session buckets, score them, and upsert the
results. Re-running over the same window refines existing sessions in place
rather than duplicating them.`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().IntVar(&aggInterval, "interval", 0, "Session length in minutes (default from config)")
	aggregateCmd.Flags().IntVar(&aggLookback, "lookback", 0, "Lookback window in hours (default from config)")
	aggregateCmd.Flags().IntVar(&aggWorkers, "workers", 0, "Concurrent users processed (default from config)")
	aggregateCmd.Flags().BoolVar(&aggDryRun, "dry-run", false, "Compute sessions without persisting")
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	results, err := runBatch(cmd, cfg, db)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Println(output.RunResults(results))
	return nil
}

// runBatch resolves run options from flags and config, then executes one
// orchestration pass. Shared with the watch command.
func runBatch(cmd *cobra.Command, cfg *config.Config, db *store.DB) ([]batch.UserResult, error) {
	opts := batch.Options{
		IntervalMinutes: cfg.IntervalMinutes,
		Lookback:        time.Duration(cfg.LookbackHours) * time.Hour,
		Workers:         cfg.Workers,
		Classifier:      buildClassifier(cfg),
		DryRun:          aggDryRun,
	}
	if aggInterval > 0 {
		opts.IntervalMinutes = aggInterval
	}
	if aggLookback > 0 {
		opts.Lookback = time.Duration(aggLookback) * time.Hour
	}
	if aggWorkers > 0 {
		opts.Workers = aggWorkers
	}

	results, err := batch.New(db, db).Run(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("running aggregation: %w", err)
	}
	return results, nil
}

// buildClassifier extends the built-in pattern lists with any custom
// patterns from configuration.
func buildClassifier(cfg *config.Config) *classify.Classifier {
	c := classify.Default()
	c.Extend(
		cfg.Classify.ProductiveApps,
		cfg.Classify.DistractingApps,
		cfg.Classify.ProductiveWebsites,
		cfg.Classify.DistractingWebsites,
	)
	return c
}
