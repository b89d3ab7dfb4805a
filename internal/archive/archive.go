// Package archive keeps a local SQLite history of completed runs. The
// archive is purely additive: a failed run records nothing and the
// seven-document snapshot contract is untouched.
package archive

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/apperrors"
	"github.com/RegiaYoung/ICLR-Analysis-sub000/internal/engine"
)

// Run is one archived engine run.
type Run struct {
	ID           string    `json:"id"`
	RunAt        time.Time `json:"run_at"`
	People       int       `json:"people"`
	Institutions int       `json:"institutions"`
	Submissions  int       `json:"submissions"`
	Reviews      int       `json:"reviews"`
	ConflictRate float64   `json:"conflict_rate"`
	OutputDir    string    `json:"output_dir"`
}

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run archive under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewArchiveError("failed to create archive directory", err)
	}

	dbPath := filepath.Join(dir, "runs.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, apperrors.NewArchiveError("failed to open run archive", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewArchiveError("failed to ping run archive", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		run_at TIMESTAMP NOT NULL,
		people INTEGER NOT NULL,
		institutions INTEGER NOT NULL,
		submissions INTEGER NOT NULL,
		reviews INTEGER NOT NULL,
		conflict_rate REAL NOT NULL,
		output_dir TEXT NOT NULL
	)`
	if _, err := s.db.Exec(query); err != nil {
		return apperrors.NewArchiveError("failed to migrate run archive", err)
	}
	return nil
}

// RecordRun stores the summary of a completed run.
func (s *Store) RecordRun(res *engine.Result, outputDir string) error {
	query := `INSERT INTO runs (
		id, run_at, people, institutions, submissions, reviews, conflict_rate, output_dir
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		res.RunID, res.RunAt, res.People, res.Institutions,
		res.Submissions, res.Reviews, res.ConflictRate, outputDir)
	if err != nil {
		return apperrors.NewArchiveError("failed to record run", err)
	}

	slog.Info("run archived", "run_id", res.RunID)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, run_at, people, institutions, submissions, reviews, conflict_rate, output_dir
		FROM runs ORDER BY run_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.NewArchiveError("failed to query runs", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.RunAt, &r.People, &r.Institutions,
			&r.Submissions, &r.Reviews, &r.ConflictRate, &r.OutputDir); err != nil {
			return nil, apperrors.NewArchiveError("failed to scan run", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
