// Package audit keeps a provenance log of projection decisions beside the
// trajectory table. The projector itself never writes here — callers that
// correct points (the replay harness, the cmds) record what they did.
package audit

import (
	"database/sql"
	"fmt"
	"time"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS projection_log (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id          TEXT NOT NULL,
	strategy          TEXT NOT NULL,
	iterations        INTEGER NOT NULL,
	converged         INTEGER NOT NULL,
	violations_before INTEGER NOT NULL,
	violations_after  INTEGER NOT NULL,
	reason            TEXT,
	created_at        TEXT NOT NULL
);
`

// EnsureSchema creates the projection_log table if needed.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate projection log: %w", err)
	}
	return nil
}

// #endregion schema

// #region entry
// Entry is a single row in the projection_log table.
type Entry struct {
	AgentID          string
	Strategy         string
	Iterations       int
	Converged        bool
	ViolationsBefore int
	ViolationsAfter  int
	Reason           string
	CreatedAt        time.Time
}

// #endregion entry

// #region log-projection
// LogProjection writes one provenance entry.
func LogProjection(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	converged := 0
	if entry.Converged {
		converged = 1
	}

	_, err := db.Exec(
		`INSERT INTO projection_log (agent_id, strategy, iterations, converged, violations_before, violations_after, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.AgentID,
		entry.Strategy,
		entry.Iterations,
		converged,
		entry.ViolationsBefore,
		entry.ViolationsAfter,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log projection: %w", err)
	}
	return nil
}

// #endregion log-projection

// #region list
// List returns the most recent projection entries, newest first.
func List(db *sql.DB, limit int) ([]Entry, error) {
	rows, err := db.Query(
		`SELECT agent_id, strategy, iterations, converged, violations_before, violations_after, reason, created_at
		 FROM projection_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var converged int
		var reason sql.NullString
		var createdStr string
		if err := rows.Scan(&e.AgentID, &e.Strategy, &e.Iterations, &converged, &e.ViolationsBefore, &e.ViolationsAfter, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		e.Converged = converged != 0
		if reason.Valid {
			e.Reason = reason.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
