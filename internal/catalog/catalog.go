// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records extraction runs in a SQLite database so that
// past runs can be listed and unchanged documents skipped in batch mode.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/docx-extract/pkg/types"
)

// DefaultPath is the catalog location used when none is configured.
const DefaultPath = ".docx-extract/catalog.db"

// timeLayout is fixed-width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned by Lookup when a document has no recorded run.
var ErrNotFound = errors.New("no recorded run")

// Store manages the catalog database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the catalog at cfg.Path and ensures the schema.
func Open(cfg types.CatalogConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dbPath := cfg.Path
	if dbPath == "" {
		dbPath = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Debug("catalog opened", zap.String("path", dbPath))
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			source_sha256 TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			text_path TEXT,
			text_bytes INTEGER,
			text_runs INTEGER,
			status TEXT NOT NULL,
			started_at TEXT,
			finished_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source_path, finished_at)`,
		`CREATE TABLE IF NOT EXISTS media (
			run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			entry TEXT NOT NULL,
			size INTEGER,
			overwritten INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a completed run and its media list in one transaction.
func (s *Store) Record(ctx context.Context, r *types.ExtractionResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source_path, source_sha256, output_dir, text_path, text_bytes, text_runs, status, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.SourcePath, r.SourceSHA256, r.OutputDir, r.TextPath,
		r.TextBytes, r.TextRuns, string(r.Status),
		formatTime(r.StartedAt), formatTime(r.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", r.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO media (run_id, seq, name, entry, size, overwritten) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	// A media row is marked overwritten when a later entry replaced its file.
	last := make(map[string]int, len(r.Media))
	for i, m := range r.Media {
		last[m.Name] = i
	}
	for i, m := range r.Media {
		overwritten := last[m.Name] != i
		if _, err := stmt.ExecContext(ctx, r.RunID, i, m.Name, m.Entry, m.Size, overwritten); err != nil {
			return fmt.Errorf("inserting media %s: %w", m.Entry, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", r.RunID, err)
	}
	s.log.Debug("recorded run",
		zap.String("run_id", r.RunID),
		zap.String("source", r.SourcePath),
		zap.Int("media", len(r.Media)))
	return nil
}

const runColumns = `run_id, source_path, source_sha256, output_dir, text_path, text_bytes, text_runs, status, started_at, finished_at`

// Lookup returns the most recent run for sourcePath, or ErrNotFound.
// Media are not loaded; use Media for that.
func (s *Store) Lookup(ctx context.Context, sourcePath string) (*types.ExtractionResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE source_path = ?
		 ORDER BY finished_at DESC, rowid DESC LIMIT 1`, sourcePath)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", sourcePath, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up %s: %w", sourcePath, err)
	}
	return r, nil
}

// List returns recorded runs, newest first. A non-positive limit means 50.
func (s *Store) List(ctx context.Context, limit int) ([]types.ExtractionResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []types.ExtractionResult
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Media returns the media rows of a run in extraction order, along with the
// basenames that were overwritten within it.
func (s *Store) Media(ctx context.Context, runID string) ([]types.MediaFile, []string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, entry, size, overwritten FROM media WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying media for %s: %w", runID, err)
	}
	defer rows.Close()

	var files []types.MediaFile
	var overwritten []string
	for rows.Next() {
		var m types.MediaFile
		var ow bool
		if err := rows.Scan(&m.Name, &m.Entry, &m.Size, &ow); err != nil {
			return nil, nil, fmt.Errorf("scanning media: %w", err)
		}
		files = append(files, m)
		if ow {
			overwritten = append(overwritten, m.Name)
		}
	}
	return files, overwritten, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*types.ExtractionResult, error) {
	var r types.ExtractionResult
	var textPath, started, finished sql.NullString
	var textBytes, textRuns sql.NullInt64
	var status string
	if err := sc.Scan(&r.RunID, &r.SourcePath, &r.SourceSHA256, &r.OutputDir,
		&textPath, &textBytes, &textRuns, &status, &started, &finished); err != nil {
		return nil, err
	}
	r.TextPath = textPath.String
	r.TextBytes = int(textBytes.Int64)
	r.TextRuns = int(textRuns.Int64)
	r.Status = types.ExtractionStatus(status)
	r.StartedAt = parseTime(started.String)
	r.FinishedAt = parseTime(finished.String)
	return &r, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
