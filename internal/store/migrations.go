package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the raw sample and session tables.
//
// Timestamps are stored as epoch milliseconds so bucket boundaries survive a
// round trip exactly. The UNIQUE(user_id, session_start) constraint is the
// correctness guard against duplicate sessions when aggregation reruns or
// multiple orchestrator instances overlap.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS raw_samples (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			sample_id    TEXT NOT NULL DEFAULT '',
			user_id      TEXT NOT NULL,
			employee_id  TEXT NOT NULL DEFAULT '',
			observed_at  INTEGER NOT NULL,
			status       TEXT NOT NULL,
			payload      TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id            TEXT NOT NULL,
			employee_id        TEXT NOT NULL DEFAULT '',
			session_start      INTEGER NOT NULL,
			session_end        INTEGER NOT NULL,
			duration_minutes   INTEGER NOT NULL,
			status             TEXT NOT NULL,
			productivity_score INTEGER NOT NULL,
			focus_score        INTEGER NOT NULL,
			efficiency_score   INTEGER NOT NULL,
			capture_count      INTEGER NOT NULL,
			total_active_time  INTEGER NOT NULL,
			productive_time    INTEGER NOT NULL,
			detail             TEXT NOT NULL,
			updated_at         TEXT NOT NULL,
			UNIQUE (user_id, session_start)
		)`,

		// Dedupe re-ingested agent files: sample ids are unique when present.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_raw_samples_sample_id
			ON raw_samples(sample_id) WHERE sample_id != ''`,
		`CREATE INDEX IF NOT EXISTS idx_raw_samples_user_time ON raw_samples(user_id, observed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_raw_samples_status ON raw_samples(status)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_start ON sessions(user_id, session_start)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
