// Command seed loads a small electric power steering demo dataset through
// the import engine: two hazards with full goal/requirement/test chains, an
// FMEA slice, and one open defect. Re-running is idempotent apart from the
// updated_at timestamps.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/safetygraph/safetygraph/engine/imports"
	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/engine/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	neo4jURL := envOr("NEO4J_URL", "neo4j://localhost:7687")
	neo4jUser := envOr("NEO4J_USER", "neo4j")
	neo4jPass := envOr("NEO4J_PASS", "password")

	driver, err := neo4j.NewDriverWithContext(neo4jURL, neo4j.BasicAuth(neo4jUser, neo4jPass, ""))
	if err != nil {
		log.Fatalf("neo4j connect: %v", err)
	}
	defer driver.Close(ctx)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st := store.New(driver, logger)
	if err := st.VerifyConnectivity(ctx); err != nil {
		log.Fatalf("neo4j unreachable at %s: %v", neo4jURL, err)
	}

	im := imports.New(st, logger, nil)

	hara, err := im.ImportHARA(ctx, haraData())
	if err != nil {
		log.Fatalf("hara import: %v", err)
	}
	log.Printf("hara: %d hazards, %d scenarios, %d goals, %d relationships",
		hara.HazardsCreated, hara.ScenariosCreated, hara.SafetyGoalsCreated, hara.RelationshipsCreated)

	reqs, err := im.ImportRequirements(ctx, requirementsData())
	if err != nil {
		log.Fatalf("requirements import: %v", err)
	}
	log.Printf("requirements: %d FSRs, %d TSRs, %d components, %d relationships",
		reqs.FSRsCreated, reqs.TSRsCreated, reqs.ComponentsCreated, reqs.RelationshipsCreated)

	fmea, err := im.ImportFMEA(ctx, fmeaData())
	if err != nil {
		log.Fatalf("fmea import: %v", err)
	}
	log.Printf("fmea: %d components, %d failure modes, %d entries, %d relationships",
		fmea.ComponentsCreated, fmea.FailureModesCreated, fmea.FMEAEntriesCreated, fmea.RelationshipsCreated)

	tests, err := im.ImportTests(ctx, testsData())
	if err != nil {
		log.Fatalf("tests import: %v", err)
	}
	log.Printf("tests: %d test cases, %d relationships", tests.TestCasesCreated, tests.RelationshipsCreated)

	defects, err := im.ImportDefects(ctx, defectsData())
	if err != nil {
		log.Fatalf("defects import: %v", err)
	}
	log.Printf("defects: %d defects, %d relationships", defects.DefectsCreated, defects.RelationshipsCreated)

	log.Println("seed complete")
}

func intPtr(n int) *int { return &n }

func haraData() imports.HARARequest {
	return imports.HARARequest{
		Hazards: []schema.Hazard{
			{ID: "H-001", Description: "Unintended self-steering at highway speed", ASIL: schema.ASILD,
				Severity: intPtr(3), Exposure: intPtr(4), Controllability: intPtr(3)},
			{ID: "H-002", Description: "Loss of steering assist during parking", ASIL: schema.ASILB,
				Severity: intPtr(1), Exposure: intPtr(3), Controllability: intPtr(2)},
		},
		Scenarios: []schema.Scenario{
			{ID: "SC-001", Name: "Highway cruising", OperatingMode: "driving", Environment: "dry highway, >100 km/h"},
			{ID: "SC-002", Name: "Parking maneuver", OperatingMode: "driving", Environment: "parking lot, <10 km/h"},
		},
		SafetyGoals: []schema.SafetyGoal{
			{ID: "SG-001", Description: "Prevent unintended steering torque above driver override limit",
				ASIL: schema.ASILD, SafeState: "assist torque ramped to zero", FaultToleranceTime: "100ms"},
			{ID: "SG-002", Description: "Warn the driver on loss of steering assist",
				ASIL: schema.ASILB, SafeState: "warning lamp on, manual steering", FaultToleranceTime: "500ms"},
		},
		Relationships: map[string][]schema.RelPair{
			"OCCURS_IN":    {{"H-001", "SC-001"}, {"H-002", "SC-002"}},
			"MITIGATED_BY": {{"H-001", "SG-001"}, {"H-002", "SG-002"}},
		},
	}
}

func requirementsData() imports.RequirementsRequest {
	return imports.RequirementsRequest{
		FSRs: []schema.FSR{
			{ID: "FSR-001", Text: "The EPS shall limit assist torque to the driver override threshold", ASIL: schema.ASILD, Status: "approved"},
			{ID: "FSR-002", Text: "The EPS shall signal loss of assist to the instrument cluster", ASIL: schema.ASILB, Status: "approved"},
		},
		TSRs: []schema.TSR{
			{ID: "TSR-001", Text: "Torque command plausibility check every 10ms against driver torque sensor",
				VerificationMethod: "HIL fault injection"},
			{ID: "TSR-002", Text: "Assist loss flag transmitted on CAN within 200ms of detection",
				VerificationMethod: "integration test"},
		},
		Components: []schema.Component{
			{ID: "C-001", Name: "EPS Control Unit", ComponentType: schema.ComponentSystem, Supplier: "Acme Steering", Version: "2.4"},
			{ID: "C-002", Name: "Torque Monitor SW", ComponentType: schema.ComponentSoftware, Version: "1.7.3"},
			{ID: "C-003", Name: "Assist Motor", ComponentType: schema.ComponentElectrical, PartNumber: "AM-5521"},
		},
		Relationships: map[string][]schema.RelPair{
			"REFINED_TO":   {{"SG-001", "FSR-001"}, {"SG-002", "FSR-002"}, {"FSR-001", "TSR-001"}, {"FSR-002", "TSR-002"}},
			"ALLOCATED_TO": {{"TSR-001", "C-002"}, {"TSR-002", "C-001"}},
		},
	}
}

func fmeaData() imports.FMEARequest {
	return imports.FMEARequest{
		Components: []schema.Component{
			{ID: "C-003", Name: "Assist Motor", ComponentType: schema.ComponentElectrical, PartNumber: "AM-5521"},
		},
		FailureModes: []schema.FailureMode{
			{ID: "FM-001", Name: "Motor winding short circuit", Category: schema.FailureElectrical},
			{ID: "FM-002", Name: "Torque sensor signal drift", Category: schema.FailureElectrical},
		},
		FMEAEntries: []schema.FMEAEntry{
			{ID: "FMEA-001", FailureMode: "Motor winding short circuit",
				Effect: "uncommanded assist torque", Cause: "insulation breakdown",
				Detection: "phase current monitoring", Severity: intPtr(9), Occurrence: intPtr(2), RPN: intPtr(54)},
			{ID: "FMEA-002", FailureMode: "Torque sensor signal drift",
				Effect: "assist torque offset", Cause: "temperature aging",
				Detection: "dual-channel plausibility", Severity: intPtr(7), Occurrence: intPtr(3), RPN: intPtr(63)},
		},
		Relationships: map[string][]schema.RelPair{
			"HAS_FAILURE_MODE": {{"C-003", "FM-001"}, {"C-002", "FM-002"}},
			"ANALYZED_IN":      {{"FM-001", "FMEA-001"}, {"FM-002", "FMEA-002"}},
		},
	}
}

func testsData() imports.TestsRequest {
	return imports.TestsRequest{
		TestCases: []schema.TestCase{
			{ID: "TC-001", Name: "Torque plausibility fault injection", Status: schema.TestPassed,
				TestType: schema.TestTypeHIL, CoverageLevel: schema.CoverageBranch},
			{ID: "TC-002", Name: "Assist loss CAN latency", Status: schema.TestFailed,
				TestType: schema.TestTypeIntegration},
			{ID: "TC-003", Name: "Winding short detection", Status: schema.TestNotRun,
				TestType: schema.TestTypeHIL},
		},
		Relationships: map[string][]schema.RelPair{
			"VERIFIED_BY": {{"TSR-001", "TC-001"}, {"TSR-002", "TC-002"}, {"C-003", "TC-003"}},
		},
	}
}

func defectsData() imports.DefectsRequest {
	return imports.DefectsRequest{
		Defects: []schema.DefectInstance{
			{ID: "D-001", Description: "Assist loss flag delayed beyond 200ms under bus load",
				Severity: schema.DefectMajor, Status: schema.DefectOpen,
				Source: schema.SourceTest, DetectedDate: "2026-08-12T09:30:00Z"},
		},
		Relationships: map[string][]schema.RelPair{
			"FOUND_IN": {{"D-001", "C-001"}},
			"VIOLATES": {{"D-001", "TSR-002"}},
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
