// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal persists batch runs and per-file export outcomes in a
// SQLite database, so operators can answer "what happened to that deck
// last night" without digging through console scrollback.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deckport/pkg/types"
)

// Store manages the export journal database.
type Store struct {
	db    *sql.DB
	runID int64
}

// Open opens or creates the journal database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pipeline TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			shapes_removed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_run_id ON exports(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun records the start of a batch; subsequent RecordExport calls
// attach to it.
func (s *Store) BeginRun(pipeline types.Pipeline, inputDir, outputDir string) error {
	res, err := s.db.Exec(
		`INSERT INTO runs (pipeline, input_dir, output_dir, started_at) VALUES (?, ?, ?, ?)`,
		string(pipeline), inputDir, outputDir, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	s.runID = id
	return nil
}

// RecordExport appends one file outcome to the current run.
func (s *Store) RecordExport(rec types.ExportRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO exports (run_id, source, output, status, shapes_removed, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.runID, rec.Source, rec.Output, string(rec.Status),
		rec.ShapesRemoved, rec.Duration.Milliseconds(), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("recording export of %s: %w", rec.Source, err)
	}
	return nil
}

// HistoryEntry is one journaled export joined with its run.
type HistoryEntry struct {
	RunID         int64
	Pipeline      types.Pipeline
	StartedAt     time.Time
	Source        string
	Output        string
	Status        types.ExportStatus
	ShapesRemoved int
	Duration      time.Duration
	Error         string
}

// History returns the most recent export outcomes, newest run first.
// A non-positive limit returns up to 50 entries.
func (s *Store) History(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.pipeline, r.started_at,
		        e.source, e.output, e.status, e.shapes_removed, e.duration_ms, COALESCE(e.error, '')
		 FROM exports e JOIN runs r ON r.id = e.run_id
		 ORDER BY e.id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e          HistoryEntry
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&e.RunID, &e.Pipeline, &startedAt,
			&e.Source, &e.Output, &e.Status, &e.ShapesRemoved, &durationMS, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339, startedAt); perr == nil {
			e.StartedAt = ts
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
