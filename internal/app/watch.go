package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/output"
	"github.com/workpulse/workpulse/internal/store"
)

var watchEvery int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run aggregation on a recurring schedule",
	Long: `Run the aggregation batch immediately and then again at a fixed
interval, printing each run's per-user summary. Intended for environments
without an external scheduler; under cron, use 'workpulse aggregate' instead.

Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchEvery, "every", 0, "Minutes between runs (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	every := time.Duration(cfg.WatchMinutes) * time.Minute
	if watchEvery > 0 {
		every = time.Duration(watchEvery) * time.Minute
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	fmt.Printf("Aggregating every %s. Press Ctrl+C to stop.\n", every)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		results, err := runBatch(cmd, cfg, db)
		if err != nil {
			// A transient failure should not kill the loop.
			fmt.Fprintln(os.Stderr, "run failed:", err)
		} else {
			fmt.Println(output.RunResults(results))
		}

		select {
		case <-ctx.Done():
			fmt.Println("Stopped.")
			return nil
		case <-ticker.C:
		}
	}
}
