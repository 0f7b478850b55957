package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/workpulse/workpulse/internal/config"
	"github.com/workpulse/workpulse/internal/store"
	"github.com/workpulse/workpulse/internal/telemetry"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file|dir> [...]",
	Short: "Load capture-agent sample files into the store",
	Long: `Read JSON sample payloads produced by the desktop capture agent and load
them into the raw sample store. Each argument is a .json file or a directory
of .json files; a file may hold one sample object or an array of samples.

Malformed samples are skipped and counted, never fatal. Samples carrying an
agent-assigned id are deduplicated, so re-ingesting the same drop directory
is safe.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var loaded, skipped, files int
	for _, arg := range args {
		paths, err := collectJSONFiles(arg)
		if err != nil {
			return err
		}
		for _, path := range paths {
			files++
			data, err := os.ReadFile(path)
			if err != nil {
				skipped++
				continue
			}
			samples, bad, err := telemetry.DecodeBatch(data)
			if err != nil {
				skipped++
				continue
			}
			skipped += bad
			for _, s := range samples {
				if err := db.InsertSample(s); err != nil {
					return fmt.Errorf("storing sample from %s: %w", path, err)
				}
				loaded++
			}
		}
	}

	fmt.Printf("Ingested %d samples from %d files", loaded, files)
	if skipped > 0 {
		fmt.Printf(" (%d malformed entries skipped)", skipped)
	}
	fmt.Println()
	return nil
}

// collectJSONFiles expands a path argument into the .json files it names.
func collectJSONFiles(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}

	entries, err := os.ReadDir(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(arg, entry.Name()))
	}
	return paths, nil
}
