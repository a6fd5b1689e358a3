package matching

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testResult() *Result {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	return &Result{
		RunID:       "run-1",
		GeneratedAt: now,
		Items: []*Recommendation{
			{FamilyID: "F1", Score: 95, Reasoning: "score: 95", Timestamp: now},
			{FamilyID: "F2", Score: 50, Reasoning: "no verdict", Timestamp: now},
			{FamilyID: "F3", Score: 40, Reasoning: "score: 40", Timestamp: now},
		},
	}
}

func TestExportLimitsAndRanks(t *testing.T) {
	export := testResult().Export(2)

	if export.Matches != 3 {
		t.Fatalf("expected matches count 3, got %d", export.Matches)
	}

	if len(export.TopMatches) != 2 {
		t.Fatalf("expected 2 top matches, got %d", len(export.TopMatches))
	}

	for i, match := range export.TopMatches {
		if match.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, match.Rank)
		}
	}

	if export.TopMatches[0].FamilyID != "F1" || export.TopMatches[0].Score != 95 {
		t.Fatalf("unexpected top match: %+v", export.TopMatches[0])
	}
}

func TestExportDefaultLimit(t *testing.T) {
	export := testResult().Export(0)

	if len(export.TopMatches) != 3 {
		t.Fatalf("expected all 3 matches under the default limit, got %d", len(export.TopMatches))
	}
}

func TestExportToDir(t *testing.T) {
	dir := t.TempDir()

	path, err := testResult().ExportToDir(dir, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "HeartMatch_Results_") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected export file name: %s", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export file: %v", err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("parsing export file: %v", err)
	}

	if export.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", export.RunID)
	}

	if len(export.TopMatches) != 2 {
		t.Fatalf("expected 2 top matches, got %d", len(export.TopMatches))
	}
}

func TestReportContainsProfilesAndReasoning(t *testing.T) {
	result := testResult()

	report := Report(
		testChild(),
		testFamilies("F1").Items[0],
		result.Items[0],
	)

	for _, expected := range []string{
		"Match Score: 95%",
		"Creative and artistic",
		"Married Couple",
		"score: 95",
	} {
		if !strings.Contains(report, expected) {
			t.Fatalf("expected report to contain %q, got:\n%s", expected, report)
		}
	}
}
