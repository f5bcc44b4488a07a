// Package trajectory is the append-only log of observed manifold points
// per agent. The store is a passive record of what happened: it never
// validates or rejects a point — whether a point was allowed is the
// validator's concern, not the log's.
package trajectory

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// #region schema
// The column names are literally the 14 dimension names and the types are
// REAL — an on-disk contract shared with every reader of the file.
const schema = `
CREATE TABLE IF NOT EXISTS trajectory_points (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id      TEXT NOT NULL,
	timestamp     REAL NOT NULL,
	truthfulness    REAL NOT NULL,
	love            REAL NOT NULL,
	justice         REAL NOT NULL,
	unity           REAL NOT NULL,
	service         REAL NOT NULL,
	detachment      REAL NOT NULL,
	humility        REAL NOT NULL,
	trustworthiness REAL NOT NULL,
	patience        REAL NOT NULL,
	compassion      REAL NOT NULL,
	wisdom          REAL NOT NULL,
	courage         REAL NOT NULL,
	generosity      REAL NOT NULL,
	forgiveness     REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trajectory_agent_ts ON trajectory_points (agent_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_trajectory_ts ON trajectory_points (timestamp);
`

// dimColumns joins the 14 dimension names for SELECT/INSERT lists so the
// statement column order always matches the vector index order.
var dimColumns = strings.Join(manifold.Names(), ", ")

// #endregion schema

// #region store-struct
// Store manages the trajectory log in SQLite.
//
// A *sql.DB serializes concurrent use internally; the subsystem itself is
// single-threaded by design and performs no locking of its own.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. the
// projection audit log, which lives in the same file).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region record
// Record appends one observation and returns its row id. A zero ts means
// "now". The point is stored as-is — invalid points are allowed.
func (s *Store) Record(agentID string, point manifold.Vector, ts float64) (int64, error) {
	if ts == 0 {
		ts = float64(time.Now().UnixNano()) / 1e9
	}

	args := make([]interface{}, 0, 2+manifold.NumDimensions)
	args = append(args, agentID, ts)
	for _, v := range point {
		args = append(args, v)
	}

	query := fmt.Sprintf(
		`INSERT INTO trajectory_points (agent_id, timestamp, %s) VALUES (?, ?%s)`,
		dimColumns, strings.Repeat(", ?", manifold.NumDimensions),
	)
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert point: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// #endregion record

// #region trajectory
// Trajectory returns one agent's observations ascending by timestamp.
// Bounds are inclusive; nil means unbounded on that side.
func (s *Store) Trajectory(agentID string, start, end *float64) ([]TimedPoint, error) {
	query := fmt.Sprintf(
		`SELECT timestamp, %s FROM trajectory_points WHERE agent_id = ?`, dimColumns)
	args := []interface{}{agentID}
	query, args = appendTimeBounds(query, args, start, end)
	query += ` ORDER BY timestamp ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trajectory: %w", err)
	}
	defer rows.Close()

	var points []TimedPoint
	for rows.Next() {
		tp, _, err := scanPoint(rows, false)
		if err != nil {
			return nil, err
		}
		points = append(points, tp)
	}
	return points, rows.Err()
}

// #endregion trajectory

// #region states-matrix
// StatesMatrix flattens all matching rows across all agents into parallel
// slices ordered ascending by timestamp, for the attractor discoverer.
func (s *Store) StatesMatrix(start, end *float64) ([]manifold.Vector, []string, []float64, error) {
	query := fmt.Sprintf(
		`SELECT timestamp, %s, agent_id FROM trajectory_points WHERE 1=1`, dimColumns)
	var args []interface{}
	query, args = appendTimeBounds(query, args, start, end)
	query += ` ORDER BY timestamp ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("query states: %w", err)
	}
	defer rows.Close()

	var points []manifold.Vector
	var agents []string
	var timestamps []float64
	for rows.Next() {
		tp, agent, err := scanPoint(rows, true)
		if err != nil {
			return nil, nil, nil, err
		}
		points = append(points, tp.Point)
		agents = append(agents, agent)
		timestamps = append(timestamps, tp.Timestamp)
	}
	return points, agents, timestamps, rows.Err()
}

// #endregion states-matrix

// #region purge
// Purge deletes all rows for one agent. Irreversible.
func (s *Store) Purge(agentID string) error {
	if _, err := s.db.Exec(`DELETE FROM trajectory_points WHERE agent_id = ?`, agentID); err != nil {
		return fmt.Errorf("purge %s: %w", agentID, err)
	}
	return nil
}

// #endregion purge

// #region helpers
func appendTimeBounds(query string, args []interface{}, start, end *float64) (string, []interface{}) {
	if start != nil {
		query += ` AND timestamp >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND timestamp <= ?`
		args = append(args, *end)
	}
	return query, args
}

// scanPoint reads timestamp + 14 dimension columns, plus agent_id when
// withAgent is set. Column order matches the SELECT lists above.
func scanPoint(rows *sql.Rows, withAgent bool) (TimedPoint, string, error) {
	var tp TimedPoint
	var agent string

	dest := make([]interface{}, 0, 2+manifold.NumDimensions)
	dest = append(dest, &tp.Timestamp)
	for i := range tp.Point {
		dest = append(dest, &tp.Point[i])
	}
	if withAgent {
		dest = append(dest, &agent)
	}
	if err := rows.Scan(dest...); err != nil {
		return TimedPoint{}, "", fmt.Errorf("scan row: %w", err)
	}
	return tp, agent, nil
}

// #endregion helpers
