package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/workpulse/workpulse/internal/engine"
)

// UpsertSession inserts a session or, when a record for the same
// (user_id, session_start) already exists, replaces its mutable fields with
// the newly computed values. Safe to call repeatedly for the same bucket:
// recomputation with fuller raw data refines the stored record in place.
func (db *DB) UpsertSession(s *engine.Session) error {
	detail, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session detail: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO sessions
		 (user_id, employee_id, session_start, session_end, duration_minutes, status,
		  productivity_score, focus_score, efficiency_score, capture_count,
		  total_active_time, productive_time, detail, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, session_start) DO UPDATE SET
			employee_id        = excluded.employee_id,
			session_end        = excluded.session_end,
			duration_minutes   = excluded.duration_minutes,
			status             = excluded.status,
			productivity_score = excluded.productivity_score,
			focus_score        = excluded.focus_score,
			efficiency_score   = excluded.efficiency_score,
			capture_count      = excluded.capture_count,
			total_active_time  = excluded.total_active_time,
			productive_time    = excluded.productive_time,
			detail             = excluded.detail,
			updated_at         = excluded.updated_at`,
		s.UserID, s.EmployeeID, s.SessionStart.UnixMilli(), s.SessionEnd.UnixMilli(),
		s.DurationMinutes, string(s.Status),
		s.Analysis.ProductivityScore, s.Analysis.FocusScore, s.Analysis.EfficiencyScore,
		s.CaptureCount, s.TotalActiveTime, s.ProductiveTime,
		string(detail), time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SessionsForUser returns a user's sessions with session_start in [from, to),
// ascending by start time.
func (db *DB) SessionsForUser(userID string, from, to time.Time) ([]*engine.Session, error) {
	rows, err := db.conn.Query(
		`SELECT detail FROM sessions
		 WHERE user_id = ? AND session_start >= ? AND session_start < ?
		 ORDER BY session_start ASC`,
		userID, from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []*engine.Session
	for rows.Next() {
		var detail string
		if err := rows.Scan(&detail); err != nil {
			return nil, err
		}
		var s engine.Session
		if err := json.Unmarshal([]byte(detail), &s); err != nil {
			return nil, fmt.Errorf("decoding session detail: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// SessionsForDay returns a user's sessions for the UTC day containing t.
func (db *DB) SessionsForDay(userID string, t time.Time) ([]*engine.Session, error) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return db.SessionsForUser(userID, day, day.Add(24*time.Hour))
}

// CountSessions returns the total number of stored sessions.
func (db *DB) CountSessions() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}
