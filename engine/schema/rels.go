package schema

// Node labels used in the graph.
const (
	LabelHazard      = "Hazard"
	LabelScenario    = "Scenario"
	LabelSafetyGoal  = "SafetyGoal"
	LabelFSR         = "FunctionalSafetyRequirement"
	LabelTSR         = "TechnicalSafetyRequirement"
	LabelComponent   = "Component"
	LabelFunction    = "Function"
	LabelFailureMode = "FailureMode"
	LabelFMEAEntry   = "FMEAEntry"
	LabelTestCase    = "TestCase"
	LabelDefect      = "DefectInstance"
)

// RelKind is a named relationship kind between graph nodes.
type RelKind string

const (
	RelOccursIn       RelKind = "OCCURS_IN"       // Hazard -> Scenario
	RelMitigatedBy    RelKind = "MITIGATED_BY"    // Hazard -> SafetyGoal
	RelRefinedTo      RelKind = "REFINED_TO"      // SafetyGoal -> FSR, FSR -> TSR
	RelAllocatedTo    RelKind = "ALLOCATED_TO"    // requirement -> Component
	RelVerifiedBy     RelKind = "VERIFIED_BY"     // TSR/Component -> TestCase
	RelHasFailureMode RelKind = "HAS_FAILURE_MODE" // Component -> FailureMode
	RelAnalyzedIn     RelKind = "ANALYZED_IN"     // FailureMode -> FMEAEntry
	RelFoundIn        RelKind = "FOUND_IN"        // DefectInstance -> Component
	RelViolates       RelKind = "VIOLATES"        // DefectInstance -> requirement
	RelImplements     RelKind = "IMPLEMENTS"      // Component -> Function
	RelContributesTo  RelKind = "CONTRIBUTES_TO"  // Function -> SafetyGoal
)

// ValidRelKinds is the closed set of relationship kinds. Kind names are
// interpolated into Cypher pattern position, which cannot take parameters,
// so membership here is checked before any interpolation.
var ValidRelKinds = map[RelKind]bool{
	RelOccursIn: true, RelMitigatedBy: true, RelRefinedTo: true,
	RelAllocatedTo: true, RelVerifiedBy: true, RelHasFailureMode: true,
	RelAnalyzedIn: true, RelFoundIn: true, RelViolates: true,
	RelImplements: true, RelContributesTo: true,
}

// ParseRelKind validates a caller-supplied relationship kind name against
// the allow-list.
func ParseRelKind(name string) (RelKind, error) {
	k := RelKind(name)
	if !ValidRelKinds[k] {
		return "", NewValidationError("relationship", name, ErrUnknownRelKind)
	}
	return k, nil
}

// RelPair is a (source_id, target_id) endpoint pair for one relationship.
type RelPair [2]string

// Source returns the source node ID.
func (p RelPair) Source() string { return p[0] }

// Target returns the target node ID.
func (p RelPair) Target() string { return p[1] }
