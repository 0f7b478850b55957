// Package batch runs the recurring aggregation job: it discovers users with
// unprocessed activity samples, runs the bucketing/aggregation/scoring
// pipeline per user, and persists the resulting sessions.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workpulse/workpulse/internal/classify"
	"github.com/workpulse/workpulse/internal/engine"
	"github.com/workpulse/workpulse/internal/telemetry"
)

// SampleSource is the read-only contract to the raw sample feed.
type SampleSource interface {
	// DistinctUsersSince returns user ids with at least one eligible sample
	// observed at or after the given time.
	DistinctUsersSince(since time.Time) ([]string, error)

	// SampleRange returns a user's earliest and latest eligible sample
	// timestamps at or after since; ok is false when none exist.
	SampleRange(userID string, since time.Time) (earliest, latest time.Time, ok bool, err error)

	// SamplesForUser returns eligible samples in [from, to], ascending.
	SamplesForUser(userID string, from, to time.Time) ([]*telemetry.RawSample, error)
}

// SessionStore is the write contract for aggregated sessions.
type SessionStore interface {
	// UpsertSession inserts or refreshes the session keyed by
	// (UserID, SessionStart).
	UpsertSession(*engine.Session) error
}

// Options configures one orchestration run. Zero values fall back to the
// package defaults; the interval is resolved once by the caller and injected
// here rather than re-read mid-run.
type Options struct {
	IntervalMinutes int
	Lookback        time.Duration
	Workers         int
	Classifier      *classify.Classifier

	// DryRun computes sessions without persisting them.
	DryRun bool

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Defaults applied when Options fields are unset.
const (
	DefaultIntervalMinutes = 30
	DefaultLookback        = 24 * time.Hour
	DefaultWorkers         = 4
)

// UserResult is the per-user outcome of a run, the batch's only externally
// visible completion signal.
type UserResult struct {
	UserID          string `json:"userId"`
	SessionsCreated int    `json:"sessionsCreated"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
}

// Orchestrator wires a sample source and session store into the pipeline.
type Orchestrator struct {
	samples  SampleSource
	sessions SessionStore
}

// New creates an Orchestrator.
func New(samples SampleSource, sessions SessionStore) *Orchestrator {
	return &Orchestrator{samples: samples, sessions: sessions}
}

// Run executes one batch pass and returns one result per discovered user.
// A single user's failure is recorded in their result and never aborts the
// run; only discovery failure (total loss of the sample source) propagates.
func (o *Orchestrator) Run(ctx context.Context, opts Options) ([]UserResult, error) {
	if opts.IntervalMinutes <= 0 {
		opts.IntervalMinutes = DefaultIntervalMinutes
	}
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Classifier == nil {
		opts.Classifier = classify.Default()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	since := now().Add(-opts.Lookback)

	users, err := o.samples.DistinctUsersSince(since)
	if err != nil {
		return nil, fmt.Errorf("discovering users: %w", err)
	}

	// Blank identifiers from malformed agent data are skipped, not failed.
	valid := users[:0]
	for _, u := range users {
		if strings.TrimSpace(u) != "" {
			valid = append(valid, u)
		}
	}
	users = valid

	results := make([]UserResult, len(users))

	// Per-user processing shares no mutable state, so a bounded pool is
	// safe; each goroutine writes only its own result slot. Goroutines
	// never return errors: failures belong in the per-user result.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, userID := range users {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = UserResult{UserID: userID, Error: err.Error()}
				return nil
			}
			created, err := o.aggregateUser(userID, since, opts)
			if err != nil {
				results[i] = UserResult{UserID: userID, Error: err.Error()}
				return nil
			}
			results[i] = UserResult{UserID: userID, SessionsCreated: created, Success: true}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// aggregateUser runs RANGE → AGGREGATE → PERSIST for one user. Within a
// user the fold is strictly sequential: bucket boundaries are detected from
// the ascending sample order.
func (o *Orchestrator) aggregateUser(userID string, since time.Time, opts Options) (int, error) {
	earliest, latest, ok, err := o.samples.SampleRange(userID, since)
	if err != nil {
		return 0, fmt.Errorf("finding sample range: %w", err)
	}
	if !ok {
		// No eligible samples is an empty result, not an error.
		return 0, nil
	}

	samples, err := o.samples.SamplesForUser(userID, earliest, latest)
	if err != nil {
		return 0, fmt.Errorf("loading samples: %w", err)
	}

	sessions := engine.BuildSessions(samples, opts.IntervalMinutes, opts.Classifier)

	if opts.DryRun {
		return len(sessions), nil
	}

	for _, sess := range sessions {
		if err := o.sessions.UpsertSession(sess); err != nil {
			return 0, fmt.Errorf("persisting session %s: %w", sess.SessionStart.Format(time.RFC3339), err)
		}
	}
	return len(sessions), nil
}
