package schema

// ASIL is an Automotive Safety Integrity Level per ISO 26262.
type ASIL string

const (
	ASILQM ASIL = "QM"
	ASILA  ASIL = "A"
	ASILB  ASIL = "B"
	ASILC  ASIL = "C"
	ASILD  ASIL = "D"
)

// ValidASILs is the set of recognised ASIL levels.
var ValidASILs = map[ASIL]bool{
	ASILQM: true, ASILA: true, ASILB: true, ASILC: true, ASILD: true,
}

// Rank orders ASIL levels by stringency: D highest, QM lowest.
// Unknown levels rank below QM.
func (a ASIL) Rank() int {
	switch a {
	case ASILD:
		return 4
	case ASILC:
		return 3
	case ASILB:
		return 2
	case ASILA:
		return 1
	case ASILQM:
		return 0
	}
	return -1
}

// ComponentType classifies components in the system architecture.
type ComponentType string

const (
	ComponentHardware   ComponentType = "hardware"
	ComponentSoftware   ComponentType = "software"
	ComponentSystem     ComponentType = "system"
	ComponentMechanical ComponentType = "mechanical"
	ComponentElectrical ComponentType = "electrical"
)

// ValidComponentTypes is the set of recognised component types.
var ValidComponentTypes = map[ComponentType]bool{
	ComponentHardware: true, ComponentSoftware: true, ComponentSystem: true,
	ComponentMechanical: true, ComponentElectrical: true,
}

// TestStatus is a test case execution status.
type TestStatus string

const (
	TestPassed     TestStatus = "passed"
	TestFailed     TestStatus = "failed"
	TestNotRun     TestStatus = "not_run"
	TestBlocked    TestStatus = "blocked"
	TestInProgress TestStatus = "in_progress"
	TestSkipped    TestStatus = "skipped"
)

// ValidTestStatuses is the set of recognised test statuses.
var ValidTestStatuses = map[TestStatus]bool{
	TestPassed: true, TestFailed: true, TestNotRun: true,
	TestBlocked: true, TestInProgress: true, TestSkipped: true,
}

// TestType classifies test cases.
type TestType string

const (
	TestTypeUnit        TestType = "unit"
	TestTypeIntegration TestType = "integration"
	TestTypeSystem      TestType = "system"
	TestTypeHIL         TestType = "HIL"
	TestTypeSIL         TestType = "SIL"
	TestTypeMIL         TestType = "MIL"
	TestTypeRegression  TestType = "regression"
	TestTypeAcceptance  TestType = "acceptance"
)

// ValidTestTypes is the set of recognised test types.
var ValidTestTypes = map[TestType]bool{
	TestTypeUnit: true, TestTypeIntegration: true, TestTypeSystem: true,
	TestTypeHIL: true, TestTypeSIL: true, TestTypeMIL: true,
	TestTypeRegression: true, TestTypeAcceptance: true,
}

// CoverageLevel is a structural test coverage level.
type CoverageLevel string

const (
	CoverageStatement CoverageLevel = "statement"
	CoverageBranch    CoverageLevel = "branch"
	CoverageCondition CoverageLevel = "condition"
	CoverageMCDC      CoverageLevel = "MC/DC"
	CoveragePath      CoverageLevel = "path"
)

// ValidCoverageLevels is the set of recognised coverage levels.
var ValidCoverageLevels = map[CoverageLevel]bool{
	CoverageStatement: true, CoverageBranch: true, CoverageCondition: true,
	CoverageMCDC: true, CoveragePath: true,
}

// FailureModeCategory classifies failure modes.
type FailureModeCategory string

const (
	FailureElectrical    FailureModeCategory = "electrical"
	FailureMechanical    FailureModeCategory = "mechanical"
	FailureSoftware      FailureModeCategory = "software"
	FailureThermal       FailureModeCategory = "thermal"
	FailureEnvironmental FailureModeCategory = "environmental"
	FailureHumanError    FailureModeCategory = "human_error"
	FailureSystematic    FailureModeCategory = "systematic"
	FailureRandom        FailureModeCategory = "random"
)

// ValidFailureModeCategories is the set of recognised failure mode categories.
var ValidFailureModeCategories = map[FailureModeCategory]bool{
	FailureElectrical: true, FailureMechanical: true, FailureSoftware: true,
	FailureThermal: true, FailureEnvironmental: true, FailureHumanError: true,
	FailureSystematic: true, FailureRandom: true,
}

// DefectSeverity classifies defects.
type DefectSeverity string

const (
	DefectCritical DefectSeverity = "Critical"
	DefectMajor    DefectSeverity = "Major"
	DefectMinor    DefectSeverity = "Minor"
	DefectTrivial  DefectSeverity = "Trivial"
)

// ValidDefectSeverities is the set of recognised defect severities.
var ValidDefectSeverities = map[DefectSeverity]bool{
	DefectCritical: true, DefectMajor: true, DefectMinor: true, DefectTrivial: true,
}

// DefectStatus is a defect lifecycle state.
type DefectStatus string

const (
	DefectOpen       DefectStatus = "open"
	DefectInProgress DefectStatus = "in_progress"
	DefectResolved   DefectStatus = "resolved"
	DefectClosed     DefectStatus = "closed"
	DefectWontFix    DefectStatus = "wont_fix"
	DefectDuplicate  DefectStatus = "duplicate"
)

// ValidDefectStatuses is the set of recognised defect statuses.
var ValidDefectStatuses = map[DefectStatus]bool{
	DefectOpen: true, DefectInProgress: true, DefectResolved: true,
	DefectClosed: true, DefectWontFix: true, DefectDuplicate: true,
}

// defectTransitions is the allowed defect status transition graph:
// open -> in_progress -> resolved -> closed, with wont_fix and duplicate as
// terminal states reachable while the defect is still active, and reopening
// allowed from in_progress and resolved.
var defectTransitions = map[DefectStatus][]DefectStatus{
	DefectOpen:       {DefectInProgress, DefectWontFix, DefectDuplicate},
	DefectInProgress: {DefectResolved, DefectOpen, DefectWontFix, DefectDuplicate},
	DefectResolved:   {DefectClosed, DefectOpen},
	DefectClosed:     {},
	DefectWontFix:    {},
	DefectDuplicate:  {},
}

// CanTransitionDefect reports whether a defect may move from one status to
// another.
func CanTransitionDefect(from, to DefectStatus) bool {
	for _, next := range defectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefectSource identifies where a defect report originated.
type DefectSource string

const (
	SourceWarranty         DefectSource = "warranty"
	SourceField            DefectSource = "field"
	SourceConnectedVehicle DefectSource = "CV"
	SourceTest             DefectSource = "test"
	SourceInternal         DefectSource = "internal"
)

// ValidDefectSources is the set of recognised defect sources.
var ValidDefectSources = map[DefectSource]bool{
	SourceWarranty: true, SourceField: true, SourceConnectedVehicle: true,
	SourceTest: true, SourceInternal: true,
}

// CoverageStatus is the 3-way hazard coverage classification.
type CoverageStatus string

const (
	CoverageFull    CoverageStatus = "full"
	CoveragePartial CoverageStatus = "partial"
	CoverageNone    CoverageStatus = "none"
)
