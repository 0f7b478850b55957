package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level workpulse configuration.
type Config struct {
	IntervalMinutes int      `mapstructure:"interval_minutes"`
	LookbackHours   int      `mapstructure:"lookback_hours"`
	Workers         int      `mapstructure:"workers"`
	WatchMinutes    int      `mapstructure:"watch_minutes"`
	DBPath          string   `mapstructure:"db_path"`
	Classify        Classify `mapstructure:"classify"`
	Output          Output   `mapstructure:"output"`
}

// Classify holds custom classifier patterns appended to the built-in lists.
type Classify struct {
	ProductiveApps      []string `mapstructure:"productive_apps"`
	DistractingApps     []string `mapstructure:"distracting_apps"`
	ProductiveWebsites  []string `mapstructure:"productive_websites"`
	DistractingWebsites []string `mapstructure:"distracting_websites"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location) and
// returns a Config with all defaults applied. A missing or unreadable config
// source is not an error: the engine falls back to defaults rather than
// failing the run.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("interval_minutes", DefaultIntervalMinutes)
	v.SetDefault("lookback_hours", DefaultLookbackHours)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("watch_minutes", DefaultWatchMinutes)
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("output.color", DefaultOutput.Color)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		// Fall back to defaults whenever the settings source is unavailable.
		return defaults(), nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return defaults(), nil
	}

	if cfg.IntervalMinutes <= 0 {
		cfg.IntervalMinutes = DefaultIntervalMinutes
	}
	if cfg.LookbackHours <= 0 {
		cfg.LookbackHours = DefaultLookbackHours
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.WatchMinutes <= 0 {
		cfg.WatchMinutes = DefaultWatchMinutes
	}

	cfg.DBPath = expandPath(cfg.DBPath)
	return &cfg, nil
}

func defaults() *Config {
	return &Config{
		IntervalMinutes: DefaultIntervalMinutes,
		LookbackHours:   DefaultLookbackHours,
		Workers:         DefaultWorkers,
		WatchMinutes:    DefaultWatchMinutes,
		DBPath:          expandPath(filepath.Join(DefaultConfigDir, DefaultDBName)),
		Output:          DefaultOutput,
	}
}
