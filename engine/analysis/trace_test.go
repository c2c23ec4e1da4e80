package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/engine/store"
)

var chainKeys = []string{"hazard_id", "safety_goal_id", "fsr_id", "tsr_id", "test_case_id"}

func TestTraceabilityChains(t *testing.T) {
	a := newTestAnalyzer(func(cypher string, params map[string]any) (store.CypherResult, error) {
		if strings.Contains(cypher, "RETURN count(n) AS count") {
			return rows(row([]string{"count"}, []any{int64(1)})), nil
		}
		// Two concrete paths through the same goal: one record each.
		return rows(
			row(chainKeys, []any{"H-001", "SG-001", "FSR-001", "TSR-001", "TC-001"}),
			row(chainKeys, []any{"H-001", "SG-001", "FSR-001", "TSR-002", "TC-002"}),
		), nil
	})

	chains, err := a.TraceabilityChains(context.Background(), "H-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if chains[0].TSRID != "TSR-001" || chains[1].TSRID != "TSR-002" {
		t.Fatalf("wrong chains: %+v", chains)
	}
}

func TestTraceabilityChainsUnknownHazard(t *testing.T) {
	a := newTestAnalyzer(func(cypher string, _ map[string]any) (store.CypherResult, error) {
		if strings.Contains(cypher, "RETURN count(n) AS count") {
			return rows(row([]string{"count"}, []any{int64(0)})), nil
		}
		t.Fatal("chain query must not run for unknown hazard")
		return nil, nil
	})

	_, err := a.TraceabilityChains(context.Background(), "H-404")
	if !schema.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestTraceabilityChainsNoneIsEmptyNotError(t *testing.T) {
	a := newTestAnalyzer(func(cypher string, _ map[string]any) (store.CypherResult, error) {
		if strings.Contains(cypher, "RETURN count(n) AS count") {
			return rows(row([]string{"count"}, []any{int64(1)})), nil
		}
		return rows(), nil
	})

	chains, err := a.TraceabilityChains(context.Background(), "H-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chains) != 0 {
		t.Fatalf("expected no chains, got %+v", chains)
	}
}

func TestRequirementTraceability(t *testing.T) {
	keys := []string{"requirement_id", "upstream_hazards", "upstream_safety_goals", "downstream_ids"}
	a := newTestAnalyzer(func(_ string, params map[string]any) (store.CypherResult, error) {
		if params["requirement_id"] != "FSR-001" {
			t.Fatalf("wrong requirement id: %v", params["requirement_id"])
		}
		return rows(row(keys, []any{
			"FSR-001",
			[]any{"H-001"},
			[]any{"SG-001"},
			[]any{"TSR-001", "TC-001"},
		})), nil
	})

	trace, err := a.RequirementTraceability(context.Background(), "FSR-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trace.UpstreamHazards) != 1 || trace.UpstreamHazards[0] != "H-001" {
		t.Fatalf("wrong upstream hazards: %v", trace.UpstreamHazards)
	}
	if len(trace.DownstreamIDs) != 2 {
		t.Fatalf("wrong downstream ids: %v", trace.DownstreamIDs)
	}
}

func TestRequirementTraceabilityNotFound(t *testing.T) {
	a := newTestAnalyzer(func(_ string, _ map[string]any) (store.CypherResult, error) {
		return rows(), nil
	})

	_, err := a.RequirementTraceability(context.Background(), "FSR-404")
	if !schema.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
