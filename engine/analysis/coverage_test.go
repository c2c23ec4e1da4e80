package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/engine/store"
)

// The three status cases partition all hazards: no overlap, no gap.
func TestClassifyCoveragePartition(t *testing.T) {
	tests := []struct {
		name                   string
		safetyGoals, testCases int
		want                   schema.CoverageStatus
	}{
		{"chain reaches a test case", 2, 1, schema.CoverageFull},
		{"goal linked, no test reachable", 1, 0, schema.CoveragePartial},
		{"no goal at all", 0, 0, schema.CoverageNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyCoverage(tt.safetyGoals, tt.testCases); got != tt.want {
				t.Fatalf("classifyCoverage(%d, %d) = %s, want %s", tt.safetyGoals, tt.testCases, got, tt.want)
			}
		})
	}
}

// Hazard mitigated by a goal but with no chain to a test case is partial.
func TestHazardCoveragePartial(t *testing.T) {
	a := newTestAnalyzer(func(cypher string, params map[string]any) (store.CypherResult, error) {
		if params["hazard_id"] != "H-001" {
			t.Fatalf("wrong hazard id: %v", params["hazard_id"])
		}
		return rows(coverageRow("H-001", "Unintended acceleration", "D",
			[]any{"SG-001"}, []any{}, []any{}, []any{})), nil
	})

	cov, err := a.HazardCoverage(context.Background(), "H-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cov.CoverageStatus != schema.CoveragePartial {
		t.Fatalf("status = %s, want partial", cov.CoverageStatus)
	}
	if len(cov.SafetyGoals) != 1 || cov.SafetyGoals[0] != "SG-001" {
		t.Fatalf("wrong safety goals: %v", cov.SafetyGoals)
	}
}

// Completing the chain through FSR, TSR, and a test case makes it full.
func TestHazardCoverageFull(t *testing.T) {
	a := newTestAnalyzer(func(_ string, _ map[string]any) (store.CypherResult, error) {
		return rows(coverageRow("H-001", "Unintended acceleration", "D",
			[]any{"SG-001"}, []any{"FSR-001"}, []any{"TSR-001"}, []any{"TC-001"})), nil
	})

	cov, err := a.HazardCoverage(context.Background(), "H-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cov.CoverageStatus != schema.CoverageFull {
		t.Fatalf("status = %s, want full", cov.CoverageStatus)
	}
}

func TestHazardCoverageNotFound(t *testing.T) {
	a := newTestAnalyzer(func(_ string, _ map[string]any) (store.CypherResult, error) {
		return rows(), nil
	})

	_, err := a.HazardCoverage(context.Background(), "H-404")
	if !schema.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAllHazardsCoverageSummaryAndOrder(t *testing.T) {
	a := newTestAnalyzer(func(cypher string, _ map[string]any) (store.CypherResult, error) {
		if strings.Contains(cypher, "$asil_levels") {
			t.Fatal("no filter requested")
		}
		return rows(
			coverageRow("H-002", "Loss of braking", "QM", []any{}, []any{}, []any{}, []any{}),
			coverageRow("H-001", "Unintended acceleration", "D",
				[]any{"SG-001"}, []any{"FSR-001"}, []any{"TSR-001"}, []any{"TC-001"}),
			coverageRow("H-003", "Loss of steering", "D", []any{"SG-002"}, []any{}, []any{}, []any{}),
		), nil
	})

	all, err := a.AllHazardsCoverage(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Descending ASIL stringency, QM last despite sorting above D as a string.
	wantOrder := []string{"H-001", "H-003", "H-002"}
	for i, want := range wantOrder {
		if all.Hazards[i].HazardID != want {
			t.Fatalf("position %d: got %s, want %s", i, all.Hazards[i].HazardID, want)
		}
	}

	s := all.Summary
	if s.TotalHazards != 3 || s.FullyCovered != 1 || s.PartiallyCovered != 1 || s.NotCovered != 1 {
		t.Fatalf("wrong summary: %+v", s)
	}
	if s.FullyCovered+s.PartiallyCovered+s.NotCovered != s.TotalHazards {
		t.Fatal("statuses must partition the hazard set")
	}
	if want := 100.0 / 3.0; s.CoveragePercentage < want-0.01 || s.CoveragePercentage > want+0.01 {
		t.Fatalf("percentage = %f, want ~%f", s.CoveragePercentage, want)
	}
}

func TestAllHazardsCoverageASILFilterApplied(t *testing.T) {
	var gotLevels any
	a := newTestAnalyzer(func(cypher string, params map[string]any) (store.CypherResult, error) {
		if !strings.Contains(cypher, "WHERE h.asil IN $asil_levels") {
			t.Fatal("expected filtered query")
		}
		gotLevels = params["asil_levels"]
		return rows(), nil
	})

	if _, err := a.AllHazardsCoverage(context.Background(), []string{"D", "C"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	levels, ok := gotLevels.([]string)
	if !ok || len(levels) != 2 || levels[0] != "D" || levels[1] != "C" {
		t.Fatalf("wrong filter param: %v", gotLevels)
	}
}

// Empty hazard set yields exactly 0 percent, never a division error.
func TestCoverageStatisticsEmptyGraph(t *testing.T) {
	a := newTestAnalyzer(func(_ string, _ map[string]any) (store.CypherResult, error) {
		return rows(), nil
	})

	s, err := a.CoverageStatistics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalHazards != 0 || s.CoveragePercentage != 0 {
		t.Fatalf("wrong empty summary: %+v", s)
	}
}
