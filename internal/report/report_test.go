package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"doccomplete/internal/check"
)

func sampleFiles() []FileProblems {
	return []FileProblems{
		{
			Path: "/project/pkg/mod.py",
			Problems: []check.Problem{
				{Line: 1, Col: 0, Code: check.CodeDocstrMissing, Msg: "DCO010 docstring should be defined for a function/ method/ class"},
				{Line: 4, Col: 8, Code: check.CodeArgMissing, Msg: `DCO023 "x" argument should be described in the docstring`},
			},
		},
		{
			Path:     "/project/pkg/other.py",
			Problems: nil,
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleFiles()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	// Columns display 1-based.
	if !strings.HasPrefix(lines[0], "/project/pkg/mod.py:1:1: DCO010") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "/project/pkg/mod.py:4:9: DCO023") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestTotal(t *testing.T) {
	if got := Total(sampleFiles()); got != 2 {
		t.Errorf("total = %d, want 2", got)
	}
}

func TestGenerateSARIF(t *testing.T) {
	data, err := GenerateSARIF("/project", sampleFiles())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if report.Version != "2.1.0" {
		t.Errorf("version = %q", report.Version)
	}
	if len(report.Runs) != 1 {
		t.Fatalf("got %d runs", len(report.Runs))
	}

	run := report.Runs[0]
	if run.Tool.Driver.Name != "doccomplete" {
		t.Errorf("driver name = %q", run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 {
		t.Errorf("got %d rules, want only the codes that occurred", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 2 {
		t.Fatalf("got %d results", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != check.CodeDocstrMissing {
		t.Errorf("rule id = %q", first.RuleID)
	}
	loc := first.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "pkg/mod.py" {
		t.Errorf("uri = %q, want relative path", loc.ArtifactLocation.URI)
	}
	if loc.Region.StartLine != 1 || loc.Region.StartColumn != 1 {
		t.Errorf("region = %d:%d", loc.Region.StartLine, loc.Region.StartColumn)
	}
}
