package analysis

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// HazardCoverage is the verification coverage of one hazard: the distinct
// downstream artifacts reachable through the coverage chain, plus the 3-way
// status classification.
type HazardCoverage struct {
	HazardID       string                `json:"hazard_id"`
	Description    string                `json:"description"`
	ASIL           string                `json:"asil"`
	SafetyGoals    []string              `json:"safety_goals"`
	FSRs           []string              `json:"fsrs"`
	TSRs           []string              `json:"tsrs"`
	TestCases      []string              `json:"test_cases"`
	CoverageStatus schema.CoverageStatus `json:"coverage_status"`
}

// CoverageSummary aggregates coverage over a hazard set.
type CoverageSummary struct {
	TotalHazards       int     `json:"total_hazards"`
	FullyCovered       int     `json:"fully_covered"`
	PartiallyCovered   int     `json:"partially_covered"`
	NotCovered         int     `json:"not_covered"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// AllHazardsCoverage is the all-hazards view: per-hazard items plus the
// aggregate summary.
type AllHazardsCoverage struct {
	Hazards []HazardCoverage `json:"hazards"`
	Summary CoverageSummary  `json:"summary"`
}

// The safety-goal match is separate from the full-chain match: a hazard
// whose goal has no refinements must still classify as partial, and the
// chain pattern alone only binds goals on complete chains. DISTINCT
// collects give set semantics, so chain fan-out never double-counts.
const hazardCoverageCypher = `
MATCH (h:Hazard {id: $hazard_id})
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(sg:SafetyGoal)
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(:SafetyGoal)
               -[:REFINED_TO]->(fsr:FunctionalSafetyRequirement)
               -[:REFINED_TO]->(tsr:TechnicalSafetyRequirement)
               -[:VERIFIED_BY]->(tc:TestCase)
RETURN h.id AS hazard_id, h.description AS description, h.asil AS asil,
       collect(DISTINCT sg.id) AS safety_goals,
       collect(DISTINCT fsr.id) AS fsrs,
       collect(DISTINCT tsr.id) AS tsrs,
       collect(DISTINCT tc.id) AS test_cases`

const allHazardsCoverageCypher = `
MATCH (h:Hazard)
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(sg:SafetyGoal)
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(:SafetyGoal)
               -[:REFINED_TO]->(fsr:FunctionalSafetyRequirement)
               -[:REFINED_TO]->(tsr:TechnicalSafetyRequirement)
               -[:VERIFIED_BY]->(tc:TestCase)
RETURN h.id AS hazard_id, h.description AS description, h.asil AS asil,
       collect(DISTINCT sg.id) AS safety_goals,
       collect(DISTINCT fsr.id) AS fsrs,
       collect(DISTINCT tsr.id) AS tsrs,
       collect(DISTINCT tc.id) AS test_cases`

const allHazardsCoverageFilteredCypher = `
MATCH (h:Hazard)
WHERE h.asil IN $asil_levels
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(sg:SafetyGoal)
OPTIONAL MATCH (h)-[:MITIGATED_BY]->(:SafetyGoal)
               -[:REFINED_TO]->(fsr:FunctionalSafetyRequirement)
               -[:REFINED_TO]->(tsr:TechnicalSafetyRequirement)
               -[:VERIFIED_BY]->(tc:TestCase)
RETURN h.id AS hazard_id, h.description AS description, h.asil AS asil,
       collect(DISTINCT sg.id) AS safety_goals,
       collect(DISTINCT fsr.id) AS fsrs,
       collect(DISTINCT tsr.id) AS tsrs,
       collect(DISTINCT tc.id) AS test_cases`

func coverageFromRecord(rec map[string]any) HazardCoverage {
	cov := HazardCoverage{
		HazardID:    stringOf(rec["hazard_id"]),
		Description: stringOf(rec["description"]),
		ASIL:        stringOf(rec["asil"]),
		SafetyGoals: stringsOf(rec["safety_goals"]),
		FSRs:        stringsOf(rec["fsrs"]),
		TSRs:        stringsOf(rec["tsrs"]),
		TestCases:   stringsOf(rec["test_cases"]),
	}
	cov.CoverageStatus = classifyCoverage(len(cov.SafetyGoals), len(cov.TestCases))
	return cov
}

// classifyCoverage is the 3-way partition: full when a test case is
// reachable, partial when only safety goals are linked, none otherwise.
func classifyCoverage(safetyGoals, testCases int) schema.CoverageStatus {
	switch {
	case testCases > 0:
		return schema.CoverageFull
	case safetyGoals > 0:
		return schema.CoveragePartial
	default:
		return schema.CoverageNone
	}
}

// HazardCoverage computes the coverage of a single hazard.
func (a *Analyzer) HazardCoverage(ctx context.Context, hazardID string) (HazardCoverage, error) {
	records, err := a.store.RunRead(ctx, hazardCoverageCypher, map[string]any{"hazard_id": hazardID})
	if err != nil {
		return HazardCoverage{}, err
	}
	if len(records) == 0 {
		return HazardCoverage{}, schema.NewNotFoundError("hazard", hazardID)
	}
	return coverageFromRecord(records[0]), nil
}

// AllHazardsCoverage computes coverage for every hazard, optionally
// restricted to an ASIL allow-list. Results are ordered by descending ASIL
// stringency, then id.
func (a *Analyzer) AllHazardsCoverage(ctx context.Context, asilFilter []string) (AllHazardsCoverage, error) {
	cypher := allHazardsCoverageCypher
	params := map[string]any{}
	if len(asilFilter) > 0 {
		cypher = allHazardsCoverageFilteredCypher
		params["asil_levels"] = asilFilter
	}

	records, err := a.store.RunRead(ctx, cypher, params)
	if err != nil {
		return AllHazardsCoverage{}, err
	}

	hazards := make([]HazardCoverage, 0, len(records))
	for _, rec := range records {
		hazards = append(hazards, coverageFromRecord(rec))
	}
	sortByASILThenID(hazards,
		func(h HazardCoverage) string { return h.ASIL },
		func(h HazardCoverage) string { return h.HazardID })

	return AllHazardsCoverage{Hazards: hazards, Summary: summarize(hazards)}, nil
}

// CoverageStatistics computes the aggregate summary without per-hazard
// items.
func (a *Analyzer) CoverageStatistics(ctx context.Context) (CoverageSummary, error) {
	all, err := a.AllHazardsCoverage(ctx, nil)
	if err != nil {
		return CoverageSummary{}, err
	}
	return all.Summary, nil
}

func summarize(hazards []HazardCoverage) CoverageSummary {
	s := CoverageSummary{TotalHazards: len(hazards)}
	for _, h := range hazards {
		switch h.CoverageStatus {
		case schema.CoverageFull:
			s.FullyCovered++
		case schema.CoveragePartial:
			s.PartiallyCovered++
		default:
			s.NotCovered++
		}
	}
	if s.TotalHazards > 0 {
		s.CoveragePercentage = float64(s.FullyCovered) / float64(s.TotalHazards) * 100
	}
	return s
}
