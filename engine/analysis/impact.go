package analysis

import (
	"context"
	"fmt"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// Fixed impact score weights: hazard exposure dominates risk, safety-goal
// linkage is secondary, failure-mode breadth tertiary.
const (
	hazardWeight      = 10
	safetyGoalWeight  = 5
	failureModeWeight = 3
)

// ComponentImpact is the safety footprint of one component: everything it
// can affect, with the weighted impact score.
type ComponentImpact struct {
	ComponentID   string   `json:"component_id"`
	Name          string   `json:"name"`
	ComponentType string   `json:"component_type"`
	Hazards       []string `json:"hazards"`
	SafetyGoals   []string `json:"safety_goals"`
	Functions     []string `json:"functions"`
	TestCases     []string `json:"test_cases"`
	FailureModes  []string `json:"failure_modes"`
	FMEAEntries   []string `json:"fmea_entries"`
	Defects       []string `json:"defects"`
	ImpactScore   int      `json:"impact_score"`
}

// ComponentImpactRank is one row of the ranked all-components view. MaxASIL
// is the highest-rank ASIL among the reachable hazards, empty when none.
type ComponentImpactRank struct {
	ComponentID      string `json:"component_id"`
	Name             string `json:"name"`
	ComponentType    string `json:"component_type"`
	HazardCount      int    `json:"hazard_count"`
	SafetyGoalCount  int    `json:"safety_goal_count"`
	FailureModeCount int    `json:"failure_mode_count"`
	MaxASIL          string `json:"max_asil,omitempty"`
	ImpactScore      int    `json:"impact_score"`
}

// Failure modes match without requiring an FMEA entry, and the hazard path
// is independent of the verification and defect paths; DISTINCT collects
// keep a hazard reached through two functions counted once.
const componentImpactCypher = `
MATCH (c:Component {id: $component_id})
OPTIONAL MATCH (c)-[:IMPLEMENTS]->(f:Function)
               -[:CONTRIBUTES_TO]->(sg:SafetyGoal)
               <-[:MITIGATED_BY]-(h:Hazard)
OPTIONAL MATCH (c)-[:VERIFIED_BY]->(tc:TestCase)
OPTIONAL MATCH (c)-[:HAS_FAILURE_MODE]->(fm:FailureMode)
OPTIONAL MATCH (c)-[:HAS_FAILURE_MODE]->(:FailureMode)-[:ANALYZED_IN]->(fmea:FMEAEntry)
OPTIONAL MATCH (c)<-[:FOUND_IN]-(d:DefectInstance)
RETURN c.id AS component_id, c.name AS name, c.component_type AS component_type,
       collect(DISTINCT h.id) AS hazards,
       collect(DISTINCT sg.id) AS safety_goals,
       collect(DISTINCT f.id) AS functions,
       collect(DISTINCT tc.id) AS test_cases,
       collect(DISTINCT fm.name) AS failure_modes,
       collect(DISTINCT fmea.id) AS fmea_entries,
       collect(DISTINCT d.id) AS defects`

const allComponentsImpactCypher = `
MATCH (c:Component)
%s
OPTIONAL MATCH (c)-[:IMPLEMENTS]->(:Function)
               -[:CONTRIBUTES_TO]->(sg:SafetyGoal)
               <-[:MITIGATED_BY]-(h:Hazard)
OPTIONAL MATCH (c)-[:HAS_FAILURE_MODE]->(fm:FailureMode)
WITH c,
     count(DISTINCT h) AS hazard_count,
     count(DISTINCT sg) AS safety_goal_count,
     count(DISTINCT fm) AS failure_mode_count,
     collect(DISTINCT h.asil) AS asil_levels
RETURN c.id AS component_id, c.name AS name, c.component_type AS component_type,
       hazard_count, safety_goal_count, failure_mode_count, asil_levels,
       hazard_count * 10 + safety_goal_count * 5 + failure_mode_count * 3 AS impact_score
ORDER BY impact_score DESC, component_id
LIMIT $limit`

// ComponentImpact computes the impact analysis for one component.
func (a *Analyzer) ComponentImpact(ctx context.Context, componentID string) (ComponentImpact, error) {
	records, err := a.store.RunRead(ctx, componentImpactCypher, map[string]any{"component_id": componentID})
	if err != nil {
		return ComponentImpact{}, err
	}
	if len(records) == 0 {
		return ComponentImpact{}, schema.NewNotFoundError("component", componentID)
	}

	rec := records[0]
	impact := ComponentImpact{
		ComponentID:   stringOf(rec["component_id"]),
		Name:          stringOf(rec["name"]),
		ComponentType: stringOf(rec["component_type"]),
		Hazards:       stringsOf(rec["hazards"]),
		SafetyGoals:   stringsOf(rec["safety_goals"]),
		Functions:     stringsOf(rec["functions"]),
		TestCases:     stringsOf(rec["test_cases"]),
		FailureModes:  stringsOf(rec["failure_modes"]),
		FMEAEntries:   stringsOf(rec["fmea_entries"]),
		Defects:       stringsOf(rec["defects"]),
	}
	impact.ImpactScore = impactScore(len(impact.Hazards), len(impact.SafetyGoals), len(impact.FailureModes))
	return impact, nil
}

func impactScore(hazards, safetyGoals, failureModes int) int {
	return hazards*hazardWeight + safetyGoals*safetyGoalWeight + failureModes*failureModeWeight
}

// AllComponentsImpact returns every component ranked by descending impact
// score. typeFilter narrows to one component type when non-empty; limit
// defaults to 100 and is capped at 1000.
func (a *Analyzer) AllComponentsImpact(ctx context.Context, typeFilter string, limit int) ([]ComponentImpactRank, error) {
	where := ""
	params := map[string]any{"limit": clampLimit(limit, 100, 1000)}
	if typeFilter != "" {
		where = "WHERE c.component_type = $component_type"
		params["component_type"] = typeFilter
	}

	records, err := a.store.RunRead(ctx, fmt.Sprintf(allComponentsImpactCypher, where), params)
	if err != nil {
		return nil, err
	}

	ranks := make([]ComponentImpactRank, 0, len(records))
	for _, rec := range records {
		ranks = append(ranks, ComponentImpactRank{
			ComponentID:      stringOf(rec["component_id"]),
			Name:             stringOf(rec["name"]),
			ComponentType:    stringOf(rec["component_type"]),
			HazardCount:      intOf(rec["hazard_count"]),
			SafetyGoalCount:  intOf(rec["safety_goal_count"]),
			FailureModeCount: intOf(rec["failure_mode_count"]),
			MaxASIL:          maxASIL(stringsOf(rec["asil_levels"])),
			ImpactScore:      intOf(rec["impact_score"]),
		})
	}
	return ranks, nil
}

// maxASIL picks the highest level by rank, so D beats QM despite the
// lexicographic order. Empty when no hazards reach the component.
func maxASIL(levels []string) string {
	best := ""
	bestRank := -1
	for _, l := range levels {
		if r := schema.ASIL(l).Rank(); r > bestRank {
			best, bestRank = l, r
		}
	}
	return best
}
