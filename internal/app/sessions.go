package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/output"
	"github.com/workpulse/workpulse/internal/store"
)

var (
	sessionsUser   string
	sessionsDate   string
	sessionsDetail bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List aggregated sessions for a user",
	Long: `Display a user's aggregated productivity sessions for one day,
including scores, the dominant application, and capture counts. With
--detail, print each session's narrative summary and insights.`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsUser, "user", "", "User id (required)")
	sessionsCmd.Flags().StringVar(&sessionsDate, "date", "", "Day to list, YYYY-MM-DD (default: today, UTC)")
	sessionsCmd.Flags().BoolVar(&sessionsDetail, "detail", false, "Include narrative summaries")
	_ = sessionsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	day := time.Now().UTC()
	if sessionsDate != "" {
		day, err = time.Parse("2006-01-02", sessionsDate)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	sessions, err := db.SessionsForDay(sessionsUser, day)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	fmt.Println(output.Section(fmt.Sprintf("Sessions for %s on %s", sessionsUser, day.Format("2006-01-02"))))
	fmt.Println()
	fmt.Print(output.Sessions(sessions))

	if sessionsDetail {
		for _, s := range sessions {
			fmt.Println(output.SessionDetail(s))
		}
	}
	return nil
}
