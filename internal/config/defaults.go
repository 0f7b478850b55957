// Package config provides configuration loading and defaults for workpulse.
package config

// DefaultConfigDir is the default location for workpulse configuration.
const DefaultConfigDir = "~/.config/workpulse"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "workpulse.db"

// DefaultIntervalMinutes is the session bucket length used when no setting
// is available.
const DefaultIntervalMinutes = 30

// DefaultLookbackHours is how far back a batch run looks for unprocessed
// samples.
const DefaultLookbackHours = 24

// DefaultWorkers bounds the per-user worker pool during a batch run.
const DefaultWorkers = 4

// DefaultWatchMinutes is the pause between runs in watch mode.
const DefaultWatchMinutes = 30

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
}
