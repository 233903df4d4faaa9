// Package state persists the export run history used by daemon mode. Each
// completed (or failed) export appends one row; the store never influences
// what gets exported.
package state

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

// RunStatus enumerates export outcomes.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunPartial   RunStatus = "partial" // completed with dropped documents
	RunFailed    RunStatus = "failed"
)

// Run is one export run record.
type Run struct {
	ID         int64
	Collection string
	StartedAt  time.Time
	Duration   time.Duration
	Documents  int
	Status     RunStatus
	OutputPath string
	Message    string
}

// RunStore records export runs in SQLite.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type RunStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewRunStore opens the database and ensures the schema exists.
func NewRunStore(dbPath string) (*RunStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStateStore, "open run store database").Build()
	}

	store := &RunStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStateStore, "initialize run store schema").Build()
	}
	return store, nil
}

func (s *RunStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		documents INTEGER NOT NULL,
		status TEXT NOT NULL,
		output_path TEXT NOT NULL,
		message TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_collection ON runs(collection);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one run.
func (s *RunStore) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (collection, started_at, duration_ms, documents, status, output_path, message) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.Collection, run.StartedAt.Unix(), run.Duration.Milliseconds(), run.Documents, string(run.Status), run.OutputPath, run.Message,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStateStore, "insert run record").Build()
	}
	return nil
}

// Recent returns up to limit runs for a collection, newest first.
func (s *RunStore) Recent(ctx context.Context, collection string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, collection, started_at, duration_ms, documents, status, output_path, COALESCE(message, '') FROM runs WHERE collection = ? ORDER BY id DESC LIMIT ?",
		collection, limit,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStateStore, "query run records").Build()
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  int64
			durationMS int64
			status     string
		)
		if err := rows.Scan(&run.ID, &run.Collection, &startedAt, &durationMS, &run.Documents, &status, &run.OutputPath, &run.Message); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStateStore, "scan run record").Build()
		}
		run.StartedAt = time.Unix(startedAt, 0)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		run.Status = RunStatus(status)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStateStore, "iterate run records").Build()
	}
	return runs, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
