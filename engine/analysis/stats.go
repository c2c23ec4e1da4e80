package analysis

import "context"

// DatabaseSummary is the headline view of the graph.
type DatabaseSummary struct {
	TotalNodes         int64   `json:"total_nodes"`
	TotalRelationships int64   `json:"total_relationships"`
	TotalHazards       int     `json:"total_hazards"`
	FullyCovered       int     `json:"fully_covered"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// ASILCount is one row of the ASIL distribution: how many nodes of one
// label carry one ASIL level.
type ASILCount struct {
	NodeType string `json:"node_type"`
	ASIL     string `json:"asil"`
	Count    int64  `json:"count"`
}

// DatabaseStatistics is the full statistics view.
type DatabaseStatistics struct {
	Summary            DatabaseSummary  `json:"summary"`
	NodeCounts         map[string]int64 `json:"node_counts"`
	RelationshipCounts map[string]int64 `json:"relationship_counts"`
	ASILDistribution   []ASILCount      `json:"asil_distribution"`
	TestStatusCounts   map[string]int64 `json:"test_status_counts"`
}

const asilDistributionCypher = `
MATCH (n)
WHERE n.asil IS NOT NULL
WITH labels(n)[0] AS node_type, n.asil AS asil
RETURN node_type, asil, count(*) AS count
ORDER BY node_type, asil`

const testStatusCountsCypher = `
MATCH (tc:TestCase)
RETURN tc.status AS status, count(*) AS count`

// DatabaseStatistics assembles node/relationship counts, the ASIL
// distribution, test status counts, and the coverage headline.
func (a *Analyzer) DatabaseStatistics(ctx context.Context) (DatabaseStatistics, error) {
	nodeCounts, err := a.store.NodeCounts(ctx)
	if err != nil {
		return DatabaseStatistics{}, err
	}
	relCounts, err := a.store.RelationshipCounts(ctx)
	if err != nil {
		return DatabaseStatistics{}, err
	}

	distRecords, err := a.store.RunRead(ctx, asilDistributionCypher, nil)
	if err != nil {
		return DatabaseStatistics{}, err
	}
	dist := make([]ASILCount, 0, len(distRecords))
	for _, rec := range distRecords {
		count, _ := rec["count"].(int64)
		dist = append(dist, ASILCount{
			NodeType: stringOf(rec["node_type"]),
			ASIL:     stringOf(rec["asil"]),
			Count:    count,
		})
	}

	statusRecords, err := a.store.RunRead(ctx, testStatusCountsCypher, nil)
	if err != nil {
		return DatabaseStatistics{}, err
	}
	statusCounts := make(map[string]int64)
	for _, rec := range statusRecords {
		if status := stringOf(rec["status"]); status != "" {
			statusCounts[status], _ = rec["count"].(int64)
		}
	}

	coverage, err := a.CoverageStatistics(ctx)
	if err != nil {
		return DatabaseStatistics{}, err
	}

	var totalNodes, totalRels int64
	for _, c := range nodeCounts {
		totalNodes += c
	}
	for _, c := range relCounts {
		totalRels += c
	}

	return DatabaseStatistics{
		Summary: DatabaseSummary{
			TotalNodes:         totalNodes,
			TotalRelationships: totalRels,
			TotalHazards:       coverage.TotalHazards,
			FullyCovered:       coverage.FullyCovered,
			CoveragePercentage: coverage.CoveragePercentage,
		},
		NodeCounts:         nodeCounts,
		RelationshipCounts: relCounts,
		ASILDistribution:   dist,
		TestStatusCounts:   statusCounts,
	}, nil
}
