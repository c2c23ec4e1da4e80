package imports

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// HARARequest is a Hazard Analysis and Risk Assessment batch: hazards,
// operating scenarios, safety goals, and the relationships between them.
type HARARequest struct {
	Hazards       []schema.Hazard             `json:"hazards"`
	Scenarios     []schema.Scenario           `json:"scenarios"`
	SafetyGoals   []schema.SafetyGoal         `json:"safety_goals"`
	Relationships map[string][]schema.RelPair `json:"relationships"`
}

// HARAStats reports what an ImportHARA call created.
type HARAStats struct {
	HazardsCreated       int `json:"hazards_created"`
	ScenariosCreated     int `json:"scenarios_created"`
	SafetyGoalsCreated   int `json:"safety_goals_created"`
	RelationshipsCreated int `json:"relationships_created"`
}

// ImportHARA imports a HARA dataset. The whole request is validated before
// any write; node and relationship creation afterwards is best effort per
// item.
func (im *Importer) ImportHARA(ctx context.Context, req HARARequest) (HARAStats, error) {
	if err := validateAll(req.Hazards); err != nil {
		return HARAStats{}, err
	}
	if err := validateAll(req.Scenarios); err != nil {
		return HARAStats{}, err
	}
	if err := validateAll(req.SafetyGoals); err != nil {
		return HARAStats{}, err
	}
	if err := validateRelKinds(req.Relationships); err != nil {
		return HARAStats{}, err
	}

	im.log.Info("starting HARA import",
		"hazards", len(req.Hazards), "scenarios", len(req.Scenarios), "safety_goals", len(req.SafetyGoals))

	stats := HARAStats{
		HazardsCreated:       im.mergeNodes(ctx, schema.LabelHazard, "id", asEntities(req.Hazards)).Created,
		ScenariosCreated:     im.mergeNodes(ctx, schema.LabelScenario, "id", asEntities(req.Scenarios)).Created,
		SafetyGoalsCreated:   im.mergeNodes(ctx, schema.LabelSafetyGoal, "id", asEntities(req.SafetyGoals)).Created,
		RelationshipsCreated: im.createRelationships(ctx, req.Relationships),
	}
	im.publish(ctx, "hara", stats)
	return stats, nil
}
