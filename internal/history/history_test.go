package history

import (
	"path/filepath"
	"testing"
	"time"

	"doccomplete/internal/check"
	"doccomplete/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	first := Run{
		Timestamp:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		FileCount:    3,
		ProblemCount: 5,
		ArgsCount:    5,
	}
	second := Run{
		Timestamp:    time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
		FileCount:    3,
		ProblemCount: 1,
		RaisesCount:  1,
	}

	if err := store.RecordRun(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := store.RecordRun(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].ProblemCount != 1 || runs[1].ProblemCount != 5 {
		t.Errorf("order wrong: %+v", runs)
	}
	if runs[0].ID == "" {
		t.Error("id should be assigned")
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		run := Run{Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second)}
		if err := store.RecordRun(run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSummarize(t *testing.T) {
	files := []report.FileProblems{
		{
			Path: "a.py",
			Problems: []check.Problem{
				{Code: check.CodeDocstrMissing},
				{Code: check.CodeArgMissing},
				{Code: check.CodeArgUnexpected},
				{Code: check.CodeReturnsSectionMissing},
				{Code: check.CodeRaisesSectionMissing},
			},
		},
		{
			Path: "b.py",
			Problems: []check.Problem{
				{Code: check.CodeAttrMissing},
			},
		},
	}

	run := Summarize(files)
	if run.ID == "" {
		t.Error("id should be assigned")
	}
	if run.FileCount != 2 || run.ProblemCount != 6 {
		t.Errorf("counts = %d files, %d problems", run.FileCount, run.ProblemCount)
	}
	if run.DocstringCount != 1 || run.ArgsCount != 2 || run.ReturnsCount != 1 ||
		run.RaisesCount != 1 || run.AttrsCount != 1 || run.YieldsCount != 0 {
		t.Errorf("per-concern counts wrong: %+v", run)
	}
}
