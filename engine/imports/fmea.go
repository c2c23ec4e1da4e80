package imports

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// FMEARequest is a Failure Mode and Effects Analysis batch.
type FMEARequest struct {
	Components    []schema.Component          `json:"components"`
	FailureModes  []schema.FailureMode        `json:"failure_modes"`
	FMEAEntries   []schema.FMEAEntry          `json:"fmea_entries"`
	Relationships map[string][]schema.RelPair `json:"relationships"`
}

// FMEAStats reports what an ImportFMEA call created.
type FMEAStats struct {
	ComponentsCreated    int `json:"components_created"`
	FailureModesCreated  int `json:"failure_modes_created"`
	FMEAEntriesCreated   int `json:"fmea_entries_created"`
	RelationshipsCreated int `json:"relationships_created"`
}

// ImportFMEA imports an FMEA dataset. Components are deduplicated by
// existence check; failure modes merge on their unique name so the same
// mode shared by several entries is stored once.
func (im *Importer) ImportFMEA(ctx context.Context, req FMEARequest) (FMEAStats, error) {
	if err := validateAll(req.Components); err != nil {
		return FMEAStats{}, err
	}
	if err := validateAll(req.FailureModes); err != nil {
		return FMEAStats{}, err
	}
	if err := validateAll(req.FMEAEntries); err != nil {
		return FMEAStats{}, err
	}
	if err := validateRelKinds(req.Relationships); err != nil {
		return FMEAStats{}, err
	}

	im.log.Info("starting FMEA import",
		"components", len(req.Components), "failure_modes", len(req.FailureModes), "fmea_entries", len(req.FMEAEntries))

	stats := FMEAStats{
		ComponentsCreated:    im.createComponents(ctx, req.Components).Created,
		FailureModesCreated:  im.mergeNodes(ctx, schema.LabelFailureMode, "name", asEntities(req.FailureModes)).Created,
		FMEAEntriesCreated:   im.mergeNodes(ctx, schema.LabelFMEAEntry, "id", asEntities(req.FMEAEntries)).Created,
		RelationshipsCreated: im.createRelationships(ctx, req.Relationships),
	}
	im.publish(ctx, "fmea", stats)
	return stats, nil
}
