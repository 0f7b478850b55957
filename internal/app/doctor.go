package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/output"
	"github.com/workpulse/workpulse/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database and configuration health",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	fmt.Println(output.Section("workpulse doctor"))
	fmt.Println()

	fmt.Printf(" Database:         %s\n", cfg.DBPath)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf(" Status:           %s\n", output.StyleBad.Render("unreachable: "+err.Error()))
		return nil
	}
	defer func() { _ = db.Close() }()
	fmt.Printf(" Status:           %s\n", output.StyleGood.Render("ok"))

	samples, err := db.CountSamples()
	if err != nil {
		return fmt.Errorf("counting samples: %w", err)
	}
	sessions, err := db.CountSessions()
	if err != nil {
		return fmt.Errorf("counting sessions: %w", err)
	}

	fmt.Printf(" Raw samples:      %d\n", samples)
	fmt.Printf(" Sessions:         %d\n", sessions)
	fmt.Printf(" Interval:         %d minutes\n", cfg.IntervalMinutes)
	fmt.Printf(" Lookback:         %d hours\n", cfg.LookbackHours)
	fmt.Printf(" Workers:          %d\n", cfg.Workers)
	return nil
}
