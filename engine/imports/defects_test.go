package imports

import (
	"context"
	"errors"
	"testing"

	"github.com/safetygraph/safetygraph/engine/schema"
)

func TestImportDefects(t *testing.T) {
	g := newFakeGraph()
	g.nodes["C-001"] = true
	im := newTestImporter(g, nil)

	req := DefectsRequest{
		Defects: []schema.DefectInstance{{
			ID: "D-001", Description: "ECU resets under load dump",
			Severity: schema.DefectCritical, Status: schema.DefectOpen, Source: schema.SourceField,
		}},
		Relationships: map[string][]schema.RelPair{
			"FOUND_IN": {{"D-001", "C-001"}},
		},
	}

	stats, err := im.ImportDefects(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.DefectsCreated != 1 || stats.RelationshipsCreated != 1 {
		t.Fatalf("wrong stats: %+v", stats)
	}
}

func TestUpdateDefectStatus(t *testing.T) {
	g := newFakeGraph()
	g.defectStatus["D-001"] = "open"
	im := newTestImporter(g, nil)

	if err := im.UpdateDefectStatus(context.Background(), "D-001", schema.DefectInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.defectStatus["D-001"] != "in_progress" {
		t.Fatalf("status = %s, want in_progress", g.defectStatus["D-001"])
	}

	if err := im.UpdateDefectStatus(context.Background(), "D-001", schema.DefectResolved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := im.UpdateDefectStatus(context.Background(), "D-001", schema.DefectClosed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateDefectStatusBadTransition(t *testing.T) {
	g := newFakeGraph()
	g.defectStatus["D-001"] = "open"
	im := newTestImporter(g, nil)

	err := im.UpdateDefectStatus(context.Background(), "D-001", schema.DefectClosed)
	if !errors.Is(err, schema.ErrBadTransition) {
		t.Fatalf("expected ErrBadTransition, got %v", err)
	}
	if g.defectStatus["D-001"] != "open" {
		t.Fatal("rejected transition must not write")
	}
}

func TestUpdateDefectStatusNotFound(t *testing.T) {
	im := newTestImporter(newFakeGraph(), nil)

	err := im.UpdateDefectStatus(context.Background(), "D-404", schema.DefectInProgress)
	if !schema.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateDefectStatusBadEnum(t *testing.T) {
	im := newTestImporter(newFakeGraph(), nil)

	err := im.UpdateDefectStatus(context.Background(), "D-001", "fixed")
	if !errors.Is(err, schema.ErrBadEnum) {
		t.Fatalf("expected ErrBadEnum, got %v", err)
	}
}

func TestUpdateTestStatus(t *testing.T) {
	g := newFakeGraph()
	g.testCases["TC-001"] = true
	im := newTestImporter(g, nil)

	if err := im.UpdateTestStatus(context.Background(), "TC-001", schema.TestPassed, "all assertions passed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := im.UpdateTestStatus(context.Background(), "TC-404", schema.TestFailed, ""); !schema.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := im.UpdateTestStatus(context.Background(), "TC-001", "done", ""); !errors.Is(err, schema.ErrBadEnum) {
		t.Fatalf("expected ErrBadEnum, got %v", err)
	}
}
