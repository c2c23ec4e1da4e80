package analysis

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/store"
)

// HazardHit is one hazard search or filter result.
type HazardHit struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	ASIL        string `json:"asil"`
}

// ComponentHit is one component search result.
type ComponentHit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ComponentType string `json:"component_type"`
}

// Substring matching is case sensitive (CONTAINS semantics).
const searchHazardsCypher = `
MATCH (h:Hazard)
WHERE h.description CONTAINS $q OR h.id CONTAINS $q
RETURN h.id AS id, h.description AS description, h.asil AS asil
ORDER BY ` + asilRankCase + ` DESC, h.id
LIMIT $limit`

const searchComponentsCypher = `
MATCH (c:Component)
WHERE c.name CONTAINS $q OR c.id CONTAINS $q
RETURN c.id AS id, c.name AS name, c.component_type AS component_type
ORDER BY c.name, c.id
LIMIT $limit`

const filterHazardsByASILCypher = `
MATCH (h:Hazard)
WHERE h.asil IN $asil_levels
RETURN h.id AS id, h.description AS description, h.asil AS asil
ORDER BY ` + asilRankCase + ` DESC, h.id`

// SearchHazards finds hazards whose id or description contains the query
// text. limit is clamped to [1,100].
func (a *Analyzer) SearchHazards(ctx context.Context, q string, limit int) ([]HazardHit, error) {
	records, err := a.store.RunRead(ctx, searchHazardsCypher, map[string]any{
		"q":     q,
		"limit": clampLimit(limit, 20, 100),
	})
	if err != nil {
		return nil, err
	}
	return hazardHits(records), nil
}

// SearchComponents finds components whose id or name contains the query
// text. limit is clamped to [1,100].
func (a *Analyzer) SearchComponents(ctx context.Context, q string, limit int) ([]ComponentHit, error) {
	records, err := a.store.RunRead(ctx, searchComponentsCypher, map[string]any{
		"q":     q,
		"limit": clampLimit(limit, 20, 100),
	})
	if err != nil {
		return nil, err
	}

	hits := make([]ComponentHit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, ComponentHit{
			ID:            stringOf(rec["id"]),
			Name:          stringOf(rec["name"]),
			ComponentType: stringOf(rec["component_type"]),
		})
	}
	return hits, nil
}

// FilterHazardsByASIL returns exactly the hazards whose asil is in levels,
// ordered by descending ASIL stringency then id.
func (a *Analyzer) FilterHazardsByASIL(ctx context.Context, levels []string) ([]HazardHit, error) {
	records, err := a.store.RunRead(ctx, filterHazardsByASILCypher, map[string]any{"asil_levels": levels})
	if err != nil {
		return nil, err
	}
	return hazardHits(records), nil
}

func hazardHits(records []store.Record) []HazardHit {
	hits := make([]HazardHit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, HazardHit{
			ID:          stringOf(rec["id"]),
			Description: stringOf(rec["description"]),
			ASIL:        stringOf(rec["asil"]),
		})
	}
	return hits
}
