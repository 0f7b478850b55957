package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workpulse/workpulse/internal/engine"
	"github.com/workpulse/workpulse/internal/store"
	"github.com/workpulse/workpulse/internal/telemetry"
)

var testNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func seedSample(t *testing.T, db *store.DB, id, user string, at time.Time) {
	t.Helper()
	err := db.InsertSample(&telemetry.RawSample{
		ID:         id,
		UserID:     user,
		ObservedAt: at,
		AppUsage:   []telemetry.AppUsage{{AppName: "VS Code", Duration: 600}},
		Keystrokes: telemetry.Keystrokes{TotalCount: 400},
		Status:     telemetry.StatusSynced,
	})
	require.NoError(t, err)
}

func TestRun_AggregatesAndPersists(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))
	seedSample(t, db, "a2", "u1", base.Add(14*time.Minute))
	seedSample(t, db, "a3", "u1", base.Add(31*time.Minute))
	seedSample(t, db, "b1", "u2", base.Add(5*time.Minute))

	o := New(db, db)
	results, err := o.Run(context.Background(), Options{Now: fixedNow})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byUser := map[string]UserResult{}
	for _, r := range results {
		byUser[r.UserID] = r
	}
	assert.True(t, byUser["u1"].Success)
	assert.Equal(t, 2, byUser["u1"].SessionsCreated, "samples span two buckets")
	assert.True(t, byUser["u2"].Success)
	assert.Equal(t, 1, byUser["u2"].SessionsCreated)

	n, err := db.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRun_IdempotentAcrossReruns(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))
	seedSample(t, db, "a2", "u1", base.Add(14*time.Minute))

	o := New(db, db)
	opts := Options{Now: fixedNow}

	_, err = o.Run(context.Background(), opts)
	require.NoError(t, err)
	_, err = o.Run(context.Background(), opts)
	require.NoError(t, err)

	n, err := db.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "rerunning over unchanged samples must not duplicate sessions")
}

func TestRun_LateSamplesRefineSession(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))

	o := New(db, db)
	opts := Options{Now: fixedNow}
	_, err = o.Run(context.Background(), opts)
	require.NoError(t, err)

	// A late-arriving sample lands in the already-persisted bucket.
	seedSample(t, db, "a2", "u1", base.Add(20*time.Minute))
	_, err = o.Run(context.Background(), opts)
	require.NoError(t, err)

	sessions, err := db.SessionsForDay("u1", base)
	require.NoError(t, err)
	require.Len(t, sessions, 1, "record count unchanged after refinement")
	assert.Equal(t, 2, sessions[0].CaptureCount, "recomputed from the fuller sample set")
}

func TestRun_NoUsersNoResults(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	o := New(db, db)
	results, err := o.Run(context.Background(), Options{Now: fixedNow})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_UserWithoutEligibleSamplesSucceedsEmpty(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	// Outside the lookback window: discovered set is empty, but exercising
	// aggregateUser directly documents the empty-range contract.
	o := New(db, db)
	created, err := o.aggregateUser("ghost", testNow.Add(-24*time.Hour), Options{
		IntervalMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

// failingSource wraps a store but fails sample loading for one user.
type failingSource struct {
	*store.DB
	failUser string
}

func (f *failingSource) SamplesForUser(userID string, from, to time.Time) ([]*telemetry.RawSample, error) {
	if userID == f.failUser {
		return nil, errors.New("corrupt page")
	}
	return f.DB.SamplesForUser(userID, from, to)
}

func TestRun_FailureIsolatedPerUser(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))
	seedSample(t, db, "b1", "u2", base.Add(2*time.Minute))

	o := New(&failingSource{DB: db, failUser: "u1"}, db)
	results, err := o.Run(context.Background(), Options{Now: fixedNow})
	require.NoError(t, err, "one user's failure must not abort the batch")
	require.Len(t, results, 2)

	byUser := map[string]UserResult{}
	for _, r := range results {
		byUser[r.UserID] = r
	}
	assert.False(t, byUser["u1"].Success)
	assert.Contains(t, byUser["u1"].Error, "corrupt page")
	assert.True(t, byUser["u2"].Success)
	assert.Equal(t, 1, byUser["u2"].SessionsCreated)
}

// failingStore rejects all upserts.
type failingStore struct{}

func (failingStore) UpsertSession(*engine.Session) error {
	return errors.New("disk full")
}

func TestRun_PersistFailureRecorded(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))

	o := New(db, failingStore{})
	results, err := o.Run(context.Background(), Options{Now: fixedNow})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "disk full")
}

func TestRun_DryRunPersistsNothing(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	seedSample(t, db, "a1", "u1", base.Add(1*time.Minute))

	o := New(db, db)
	results, err := o.Run(context.Background(), Options{Now: fixedNow, DryRun: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].SessionsCreated)

	n, err := db.CountSessions()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRun_BoundedWorkers(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		seedSample(t, db, string(rune('a'+i)), "user-"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
	}

	o := New(db, db)
	results, err := o.Run(context.Background(), Options{Now: fixedNow, Workers: 2})
	require.NoError(t, err)
	assert.Len(t, results, 8)
	for _, r := range results {
		assert.True(t, r.Success, "user %s", r.UserID)
	}
}
