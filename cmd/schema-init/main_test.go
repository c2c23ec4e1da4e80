package main

import (
	"testing"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// Every indexed property must be a property the importers actually write,
// under the name they write it. An index on a property nothing stores can
// never serve a query.
func TestIndexPropertiesMatchStoredProps(t *testing.T) {
	stored := map[string]map[string]bool{}
	for label, props := range map[string]map[string]any{
		schema.LabelHazard: schema.Hazard{ID: "H-001", Description: "d", ASIL: schema.ASILD,
			Severity: intPtr(3), Exposure: intPtr(4), Controllability: intPtr(3)}.Props(),
		schema.LabelSafetyGoal: schema.SafetyGoal{ID: "SG-001", Description: "d", ASIL: schema.ASILD}.Props(),
		schema.LabelFSR:        schema.FSR{ID: "FSR-001", Text: "t", ASIL: schema.ASILD}.Props(),
		schema.LabelTSR: schema.TSR{ID: "TSR-001", Text: "t",
			ASILDecomposition: "B(D)"}.Props(),
		schema.LabelComponent: schema.Component{ID: "C-001", Name: "n",
			ComponentType: schema.ComponentHardware}.Props(),
		schema.LabelTestCase: schema.TestCase{ID: "TC-001", Name: "n", Status: schema.TestPassed}.Props(),
		schema.LabelDefect: schema.DefectInstance{ID: "D-001", Description: "d",
			Severity: schema.DefectMajor, Status: schema.DefectOpen, Source: schema.SourceTest}.Props(),
	} {
		stored[label] = map[string]bool{}
		for k := range props {
			stored[label][k] = true
		}
	}

	for _, idx := range indexes {
		props, ok := stored[idx.label]
		if !ok {
			t.Errorf("index %s: no fixture for label %s", idx.name, idx.label)
			continue
		}
		if !props[idx.property] {
			t.Errorf("index %s: property %s.%s is never written by Props()",
				idx.name, idx.label, idx.property)
		}
	}
}

// Uniqueness constraints must cover every merge key the import engine uses.
func TestConstraintsCoverMergeKeys(t *testing.T) {
	want := map[string]string{
		schema.LabelHazard:      "id",
		schema.LabelScenario:    "id",
		schema.LabelSafetyGoal:  "id",
		schema.LabelFSR:         "id",
		schema.LabelTSR:         "id",
		schema.LabelComponent:   "id",
		schema.LabelFunction:    "id",
		schema.LabelFailureMode: "name",
		schema.LabelFMEAEntry:   "id",
		schema.LabelTestCase:    "id",
		schema.LabelDefect:      "id",
	}
	got := map[string]string{}
	for _, c := range constraints {
		got[c.label] = c.property
	}
	for label, prop := range want {
		if got[label] != prop {
			t.Errorf("label %s: constraint on %q, want %q", label, got[label], prop)
		}
	}
}

func intPtr(v int) *int { return &v }
