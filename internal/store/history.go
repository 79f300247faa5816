// Package store records generation runs in a SQLite database so a tuning
// session can be traced back: which table was written when, from which
// configuration, and with which solved falloff rate.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Run is one recorded generation.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	OutputPath  string
	Rows        int
	FalloffRate float64
	MaxResidual float64
	Chatter     bool
	Checksum    string
}

// HistoryStore persists generation runs at <root>/.slipcurve/history.db.
type HistoryStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT    NOT NULL,
	output_path   TEXT    NOT NULL,
	rows          INTEGER NOT NULL,
	falloff_rate  REAL    NOT NULL,
	max_residual  REAL    NOT NULL,
	chatter       INTEGER NOT NULL DEFAULT 0,
	checksum      TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (creating if needed) the history database for the project
// rooted at projectRoot.
func Open(projectRoot string) (*HistoryStore, error) {
	dir := filepath.Join(projectRoot, ".slipcurve")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating .slipcurve directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Record inserts a run and returns its ID. A zero CreatedAt is stamped
// with the current time.
func (s *HistoryStore) Record(ctx context.Context, r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, output_path, rows, falloff_rate, max_residual, chatter, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.CreatedAt.Format(time.RFC3339Nano), r.OutputPath, r.Rows,
		r.FalloffRate, r.MaxResidual, boolToInt(r.Chatter), r.Checksum)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first, capped at limit
// (unlimited when limit <= 0).
func (s *HistoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, output_path, rows, falloff_rate, max_residual, chatter, checksum
	          FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		var chatter int
		if err := rows.Scan(&r.ID, &created, &r.OutputPath, &r.Rows,
			&r.FalloffRate, &r.MaxResidual, &chatter, &r.Checksum); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", created, err)
		}
		r.Chatter = chatter != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Checksum returns the hex SHA-256 of serialized table text, used to tie
// a history row to the exact file content it produced.
func Checksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
