// Package history persists one row per lint run so trends can be
// inspected over time.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"doccomplete/internal/check"
	"doccomplete/internal/report"
)

const driverName = "sqlite"

// Run summarizes one scan.
type Run struct {
	ID           string
	Timestamp    time.Time
	FileCount    int
	ProblemCount int

	// Per-concern finding counts, keyed off the code prefix.
	DocstringCount int
	ArgsCount      int
	ReturnsCount   int
	YieldsCount    int
	RaisesCount    int
	AttrsCount     int
}

// Summarize folds per-file findings into a Run, assigning a fresh id.
func Summarize(files []report.FileProblems) Run {
	run := Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		FileCount: len(files),
	}

	for _, file := range files {
		for _, problem := range file.Problems {
			run.ProblemCount++
			switch {
			case problem.Code == check.CodeDocstrMissing:
				run.DocstringCount++
			case strings.HasPrefix(problem.Code, "DCO02"):
				run.ArgsCount++
			case strings.HasPrefix(problem.Code, "DCO03"):
				run.ReturnsCount++
			case strings.HasPrefix(problem.Code, "DCO04"):
				run.YieldsCount++
			case strings.HasPrefix(problem.Code, "DCO05"):
				run.RaisesCount++
			case strings.HasPrefix(problem.Code, "DCO06"):
				run.AttrsCount++
			}
		}
	}

	return run
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) RecordRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO runs (
  id, ts_utc, file_count, problem_count,
  docstring_count, args_count, returns_count, yields_count, raises_count, attrs_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.FileCount,
		run.ProblemCount,
		run.DocstringCount,
		run.ArgsCount,
		run.ReturnsCount,
		run.YieldsCount,
		run.RaisesCount,
		run.AttrsCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
SELECT id, ts_utc, file_count, problem_count,
  docstring_count, args_count, returns_count, yields_count, raises_count, attrs_count
FROM runs ORDER BY ts_utc DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts string
		if err := rows.Scan(
			&run.ID,
			&ts,
			&run.FileCount,
			&run.ProblemCount,
			&run.DocstringCount,
			&run.ArgsCount,
			&run.ReturnsCount,
			&run.YieldsCount,
			&run.RaisesCount,
			&run.AttrsCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			run.Timestamp = parsed
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
