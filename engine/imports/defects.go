package imports

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// DefectsRequest is a field/test defect batch.
type DefectsRequest struct {
	Defects       []schema.DefectInstance     `json:"defects"`
	Relationships map[string][]schema.RelPair `json:"relationships"`
}

// DefectsStats reports what an ImportDefects call created.
type DefectsStats struct {
	DefectsCreated       int `json:"defects_created"`
	RelationshipsCreated int `json:"relationships_created"`
}

// ImportDefects imports defect instances and their component/requirement
// links.
func (im *Importer) ImportDefects(ctx context.Context, req DefectsRequest) (DefectsStats, error) {
	if err := validateAll(req.Defects); err != nil {
		return DefectsStats{}, err
	}
	if err := validateRelKinds(req.Relationships); err != nil {
		return DefectsStats{}, err
	}

	im.log.Info("starting defects import", "defects", len(req.Defects))

	stats := DefectsStats{
		DefectsCreated:       im.mergeNodes(ctx, schema.LabelDefect, "id", asEntities(req.Defects)).Created,
		RelationshipsCreated: im.createRelationships(ctx, req.Relationships),
	}
	im.publish(ctx, "defects", stats)
	return stats, nil
}

const getDefectStatusCypher = `
MATCH (d:DefectInstance {id: $id})
RETURN d.status AS status`

// resolved_date is written exactly once per resolution: only the transition
// into resolved sets it, later transitions leave it untouched.
const updateDefectStatusCypher = `
MATCH (d:DefectInstance {id: $id})
SET d.status = $status,
    d.resolved_date = CASE WHEN $status = 'resolved' THEN datetime() ELSE d.resolved_date END,
    d.updated_at = datetime()
RETURN d.id AS id`

// UpdateDefectStatus moves a defect through its lifecycle. The transition
// is checked against the allowed status graph before any write.
func (im *Importer) UpdateDefectStatus(ctx context.Context, id string, status schema.DefectStatus) error {
	if !schema.ValidDefectStatuses[status] {
		return schema.NewValidationError("status", string(status), schema.ErrBadEnum)
	}

	records, err := im.store.RunRead(ctx, getDefectStatusCypher, map[string]any{"id": id})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return schema.NewNotFoundError("defect", id)
	}
	current, _ := records[0]["status"].(string)
	if !schema.CanTransitionDefect(schema.DefectStatus(current), status) {
		return schema.NewValidationError("status", current+" -> "+string(status), schema.ErrBadTransition)
	}

	if _, err := im.store.RunWrite(ctx, updateDefectStatusCypher, map[string]any{
		"id":     id,
		"status": string(status),
	}); err != nil {
		return err
	}
	im.log.Info("updated defect status", "id", id, "from", current, "to", status)
	return nil
}
