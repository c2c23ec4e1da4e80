package imports

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// RequirementsRequest is a safety requirements batch. Components may be
// included so requirement allocation targets exist before the relationship
// pass.
type RequirementsRequest struct {
	FSRs          []schema.FSR                `json:"fsrs"`
	TSRs          []schema.TSR                `json:"tsrs"`
	Components    []schema.Component          `json:"components"`
	Relationships map[string][]schema.RelPair `json:"relationships"`
}

// RequirementsStats reports what an ImportRequirements call created.
type RequirementsStats struct {
	FSRsCreated          int `json:"fsrs_created"`
	TSRsCreated          int `json:"tsrs_created"`
	ComponentsCreated    int `json:"components_created"`
	RelationshipsCreated int `json:"relationships_created"`
}

// ImportRequirements imports functional and technical safety requirements.
func (im *Importer) ImportRequirements(ctx context.Context, req RequirementsRequest) (RequirementsStats, error) {
	if err := validateAll(req.FSRs); err != nil {
		return RequirementsStats{}, err
	}
	if err := validateAll(req.TSRs); err != nil {
		return RequirementsStats{}, err
	}
	if err := validateAll(req.Components); err != nil {
		return RequirementsStats{}, err
	}
	if err := validateRelKinds(req.Relationships); err != nil {
		return RequirementsStats{}, err
	}

	im.log.Info("starting requirements import",
		"fsrs", len(req.FSRs), "tsrs", len(req.TSRs), "components", len(req.Components))

	stats := RequirementsStats{
		FSRsCreated:          im.mergeNodes(ctx, schema.LabelFSR, "id", asEntities(req.FSRs)).Created,
		TSRsCreated:          im.mergeNodes(ctx, schema.LabelTSR, "id", asEntities(req.TSRs)).Created,
		ComponentsCreated:    im.createComponents(ctx, req.Components).Created,
		RelationshipsCreated: im.createRelationships(ctx, req.Relationships),
	}
	im.publish(ctx, "requirements", stats)
	return stats, nil
}
