// Package store persists agent/connection snapshots for replay: a SQLite
// history store and a JSONL file reader for snapshot exports.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agentviz/agentviz/internal/agent"
)

// DB wraps a SQLite snapshot history database.
type DB struct {
	db *sql.DB
}

// SnapshotInfo describes one stored snapshot without its payload.
type SnapshotInfo struct {
	ID          int64  `json:"id"`
	TakenAt     string `json:"taken_at"`
	Agents      int    `json:"agents"`
	Connections int    `json:"connections"`
}

// Open opens or creates a snapshot database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at TEXT NOT NULL,
			agent_count INTEGER NOT NULL,
			connection_count INTEGER NOT NULL,
			agents_json TEXT NOT NULL,
			connections_json TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_taken_at ON snapshots(taken_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Save stores a snapshot with the given capture time and returns its ID.
func (d *DB) Save(snap *agent.Snapshot, takenAt time.Time) (int64, error) {
	agentsJSON, err := json.Marshal(snap.Agents)
	if err != nil {
		return 0, fmt.Errorf("encoding agents: %w", err)
	}
	connsJSON, err := json.Marshal(snap.Connections)
	if err != nil {
		return 0, fmt.Errorf("encoding connections: %w", err)
	}

	res, err := d.db.Exec(
		`INSERT INTO snapshots (taken_at, agent_count, connection_count, agents_json, connections_json)
		 VALUES (?, ?, ?, ?, ?)`,
		takenAt.UTC().Format(time.RFC3339), len(snap.Agents), len(snap.Connections),
		string(agentsJSON), string(connsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting snapshot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading snapshot id: %w", err)
	}
	return id, nil
}

// List returns stored snapshots, newest first, up to limit (0 = all).
func (d *DB) List(limit int) ([]SnapshotInfo, error) {
	query := `SELECT id, taken_at, agent_count, connection_count
		  FROM snapshots ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.TakenAt, &info.Agents, &info.Connections); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Load returns the snapshot with the given ID, or nil if it doesn't exist.
func (d *DB) Load(id int64) (*agent.Snapshot, error) {
	row := d.db.QueryRow(
		`SELECT agents_json, connections_json FROM snapshots WHERE id = ?`, id)
	return scanSnapshot(row)
}

// LoadLatest returns the most recently stored snapshot, or nil if the store
// is empty.
func (d *DB) LoadLatest() (*agent.Snapshot, error) {
	row := d.db.QueryRow(
		`SELECT agents_json, connections_json FROM snapshots ORDER BY id DESC LIMIT 1`)
	return scanSnapshot(row)
}

func scanSnapshot(row *sql.Row) (*agent.Snapshot, error) {
	var agentsJSON, connsJSON string
	if err := row.Scan(&agentsJSON, &connsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	var snap agent.Snapshot
	if err := json.Unmarshal([]byte(agentsJSON), &snap.Agents); err != nil {
		return nil, fmt.Errorf("parsing agents: %w", err)
	}
	if err := json.Unmarshal([]byte(connsJSON), &snap.Connections); err != nil {
		return nil, fmt.Errorf("parsing connections: %w", err)
	}
	return &snap, nil
}
