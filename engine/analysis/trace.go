package analysis

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// TraceChain is one concrete path through the coverage chain. Chains are
// not deduplicated at the node level: each SafetyGoal/FSR/TSR/TestCase
// combination is its own record.
type TraceChain struct {
	HazardID     string `json:"hazard_id"`
	SafetyGoalID string `json:"safety_goal_id"`
	FSRID        string `json:"fsr_id"`
	TSRID        string `json:"tsr_id"`
	TestCaseID   string `json:"test_case_id"`
}

// RequirementTrace is the up- and downstream neighbourhood of one
// requirement, bounded at fixed depths.
type RequirementTrace struct {
	RequirementID       string   `json:"requirement_id"`
	UpstreamHazards     []string `json:"upstream_hazards"`
	UpstreamSafetyGoals []string `json:"upstream_safety_goals"`
	DownstreamIDs       []string `json:"downstream_ids"`
}

const traceChainsCypher = `
MATCH (h:Hazard {id: $hazard_id})-[:MITIGATED_BY]->(sg:SafetyGoal)
      -[:REFINED_TO]->(fsr:FunctionalSafetyRequirement)
      -[:REFINED_TO]->(tsr:TechnicalSafetyRequirement)
      -[:VERIFIED_BY]->(tc:TestCase)
RETURN h.id AS hazard_id, sg.id AS safety_goal_id, fsr.id AS fsr_id,
       tsr.id AS tsr_id, tc.id AS test_case_id
ORDER BY safety_goal_id, fsr_id, tsr_id, test_case_id`

// Depth bounds (2 upstream refinement hops, 5 downstream hops) keep the
// traversal finite on densely connected graphs.
const requirementTraceCypher = `
MATCH (req {id: $requirement_id})
WHERE req:FunctionalSafetyRequirement OR req:TechnicalSafetyRequirement
OPTIONAL MATCH (h:Hazard)-[:MITIGATED_BY]->(sg:SafetyGoal)-[:REFINED_TO*1..2]->(req)
OPTIONAL MATCH (req)-[:REFINED_TO|VERIFIED_BY*1..5]->(target)
RETURN req.id AS requirement_id,
       collect(DISTINCT h.id) AS upstream_hazards,
       collect(DISTINCT sg.id) AS upstream_safety_goals,
       collect(DISTINCT target.id) AS downstream_ids`

// TraceabilityChains enumerates every complete chain from a hazard to a
// test case. A hazard with no complete chain yields an empty list, not an
// error; an unknown hazard id is a not-found error.
func (a *Analyzer) TraceabilityChains(ctx context.Context, hazardID string) ([]TraceChain, error) {
	exists, err := a.store.NodeExists(ctx, hazardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, schema.NewNotFoundError("hazard", hazardID)
	}

	records, err := a.store.RunRead(ctx, traceChainsCypher, map[string]any{"hazard_id": hazardID})
	if err != nil {
		return nil, err
	}

	chains := make([]TraceChain, 0, len(records))
	for _, rec := range records {
		chains = append(chains, TraceChain{
			HazardID:     stringOf(rec["hazard_id"]),
			SafetyGoalID: stringOf(rec["safety_goal_id"]),
			FSRID:        stringOf(rec["fsr_id"]),
			TSRID:        stringOf(rec["tsr_id"]),
			TestCaseID:   stringOf(rec["test_case_id"]),
		})
	}
	return chains, nil
}

// RequirementTraceability returns the upstream hazard/goal paths and the
// downstream refinement/verification closure of an FSR or TSR.
func (a *Analyzer) RequirementTraceability(ctx context.Context, requirementID string) (RequirementTrace, error) {
	records, err := a.store.RunRead(ctx, requirementTraceCypher, map[string]any{"requirement_id": requirementID})
	if err != nil {
		return RequirementTrace{}, err
	}
	if len(records) == 0 {
		return RequirementTrace{}, schema.NewNotFoundError("requirement", requirementID)
	}

	rec := records[0]
	return RequirementTrace{
		RequirementID:       stringOf(rec["requirement_id"]),
		UpstreamHazards:     stringsOf(rec["upstream_hazards"]),
		UpstreamSafetyGoals: stringsOf(rec["upstream_safety_goals"]),
		DownstreamIDs:       stringsOf(rec["downstream_ids"]),
	}, nil
}
