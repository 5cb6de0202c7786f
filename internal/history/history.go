// SPDX-License-Identifier: MIT

// Package history records analysis runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go driver
)

// Run is one completed background analysis run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Graphs     int
	Components int
	Outcome    string // "success" | "failure"
	Error      string
}

// Outcome values for Run.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// DB wraps the run-history database.
type DB struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		started_at  INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		graphs      INTEGER NOT NULL,
		components  INTEGER NOT NULL,
		outcome     TEXT NOT NULL,
		error       TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC)`,
}

// Open initializes the SQLite connection pool with WAL mode and busy
// timeout applied to every pooled connection, and migrates the schema.
func Open(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open failed: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping failed: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: migrate failed: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Record inserts one run.
func (h *DB) Record(ctx context.Context, run Run) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, graphs, components, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UnixMilli(),
		run.FinishedAt.UnixMilli(),
		run.Graphs,
		run.Components,
		run.Outcome,
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("history: record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *DB) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, graphs, components, outcome, error
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		if err := rows.Scan(&r.ID, &started, &finished, &r.Graphs, &r.Components, &r.Outcome, &r.Error); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(started).UTC()
		r.FinishedAt = time.UnixMilli(finished).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Ping verifies the database is reachable.
func (h *DB) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}
