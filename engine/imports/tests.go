package imports

import (
	"context"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// TestsRequest is a verification test case batch.
type TestsRequest struct {
	TestCases     []schema.TestCase           `json:"test_cases"`
	Relationships map[string][]schema.RelPair `json:"relationships"`
}

// TestsStats reports what an ImportTests call created.
type TestsStats struct {
	TestCasesCreated     int `json:"test_cases_created"`
	RelationshipsCreated int `json:"relationships_created"`
}

// ImportTests imports test cases and their verification links.
func (im *Importer) ImportTests(ctx context.Context, req TestsRequest) (TestsStats, error) {
	if err := validateAll(req.TestCases); err != nil {
		return TestsStats{}, err
	}
	if err := validateRelKinds(req.Relationships); err != nil {
		return TestsStats{}, err
	}

	im.log.Info("starting tests import", "test_cases", len(req.TestCases))

	stats := TestsStats{
		TestCasesCreated:     im.mergeNodes(ctx, schema.LabelTestCase, "id", asEntities(req.TestCases)).Created,
		RelationshipsCreated: im.createRelationships(ctx, req.Relationships),
	}
	im.publish(ctx, "tests", stats)
	return stats, nil
}

const updateTestStatusCypher = `
MATCH (tc:TestCase {id: $id})
SET tc.status = $status,
    tc.result = $result,
    tc.last_run = datetime(),
    tc.updated_at = datetime()
RETURN tc.id AS id`

// UpdateTestStatus records an execution outcome on an existing test case:
// new status, result text, and the run timestamp.
func (im *Importer) UpdateTestStatus(ctx context.Context, id string, status schema.TestStatus, result string) error {
	if !schema.ValidTestStatuses[status] {
		return schema.NewValidationError("status", string(status), schema.ErrBadEnum)
	}

	records, err := im.store.RunWrite(ctx, updateTestStatusCypher, map[string]any{
		"id":     id,
		"status": string(status),
		"result": result,
	})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return schema.NewNotFoundError("test case", id)
	}
	im.log.Info("updated test status", "id", id, "status", status)
	return nil
}
