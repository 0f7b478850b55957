package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/workpulse/workpulse/internal/telemetry"
)

// eligibleStatuses is the SQL fragment selecting samples the aggregation
// engine may consume.
const eligibleStatuses = "status IN ('synced', 'analyzed')"

// InsertSample stores one raw sample. Samples carrying an agent-assigned id
// that already exists are silently ignored, making re-ingestion of the same
// agent files safe.
func (db *DB) InsertSample(s *telemetry.RawSample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding sample payload: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO raw_samples (sample_id, user_id, employee_id, observed_at, status, payload)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (sample_id) WHERE sample_id != '' DO NOTHING`,
		s.ID, s.UserID, s.EmployeeID, s.ObservedAt.UnixMilli(), string(s.Status), string(payload),
	)
	return err
}

// DistinctUsersSince returns the user ids that have at least one eligible
// sample observed at or after the given time.
func (db *DB) DistinctUsersSince(since time.Time) ([]string, error) {
	rows, err := db.conn.Query(
		`SELECT DISTINCT user_id FROM raw_samples
		 WHERE `+eligibleStatuses+` AND observed_at >= ?
		 ORDER BY user_id`,
		since.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// SampleRange returns the earliest and latest eligible sample timestamps for
// a user at or after since. ok is false when the user has no eligible samples.
func (db *DB) SampleRange(userID string, since time.Time) (earliest, latest time.Time, ok bool, err error) {
	row := db.conn.QueryRow(
		`SELECT MIN(observed_at), MAX(observed_at) FROM raw_samples
		 WHERE user_id = ? AND `+eligibleStatuses+` AND observed_at >= ?`,
		userID, since.UnixMilli(),
	)

	var minMs, maxMs sql.NullInt64
	if err := row.Scan(&minMs, &maxMs); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if !minMs.Valid || !maxMs.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	return time.UnixMilli(minMs.Int64).UTC(), time.UnixMilli(maxMs.Int64).UTC(), true, nil
}

// SamplesForUser returns a user's eligible samples in [from, to], ascending
// by observation time. Rows whose stored payload no longer decodes are
// skipped rather than failing the batch.
func (db *DB) SamplesForUser(userID string, from, to time.Time) ([]*telemetry.RawSample, error) {
	rows, err := db.conn.Query(
		`SELECT payload FROM raw_samples
		 WHERE user_id = ? AND `+eligibleStatuses+` AND observed_at >= ? AND observed_at <= ?
		 ORDER BY observed_at ASC`,
		userID, from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var samples []*telemetry.RawSample
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var s telemetry.RawSample
		if err := json.Unmarshal([]byte(payload), &s); err != nil {
			continue
		}
		samples = append(samples, &s)
	}
	return samples, rows.Err()
}

// CountSamples returns the total number of stored raw samples.
func (db *DB) CountSamples() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM raw_samples").Scan(&n)
	return n, err
}
