// Package schema defines the node and relationship types of the safety
// traceability graph, their field constraints, and validation. It acts as the
// validation gate in front of every graph write.
package schema

// Hazard is a hazardous event identified during HARA.
type Hazard struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	ASIL            ASIL   `json:"asil"`
	Severity        *int   `json:"severity,omitempty"`        // 0-3
	Exposure        *int   `json:"exposure,omitempty"`        // 0-4
	Controllability *int   `json:"controllability,omitempty"` // 0-3
}

// Scenario is an operating scenario a hazard occurs in.
type Scenario struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	OperatingMode string `json:"operating_mode,omitempty"`
	Environment   string `json:"environment,omitempty"`
}

// SafetyGoal is a top-level safety requirement derived from a hazard.
type SafetyGoal struct {
	ID                 string `json:"id"`
	Description        string `json:"description"`
	ASIL               ASIL   `json:"asil"` // QM forbidden
	SafeState          string `json:"safe_state,omitempty"`
	FaultToleranceTime string `json:"fault_tolerance_time,omitempty"`
}

// FSR is a Functional Safety Requirement refining a safety goal.
type FSR struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	ASIL   ASIL   `json:"asil"` // QM forbidden
	Status string `json:"status,omitempty"`
}

// TSR is a Technical Safety Requirement refining an FSR.
type TSR struct {
	ID                 string `json:"id"`
	Text               string `json:"text"`
	ASILDecomposition  string `json:"asil_decomposition,omitempty"`
	VerificationMethod string `json:"verification_method,omitempty"`
}

// Component is a concrete hardware/software element of the system
// architecture.
type Component struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	ComponentType ComponentType `json:"component_type"`
	Supplier      string        `json:"supplier,omitempty"`
	PartNumber    string        `json:"part_number,omitempty"`
	Version       string        `json:"version,omitempty"`
}

// Function is a logical function implemented by components.
type Function struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FailureMode is a mode of failure shared across FMEA entries. It is keyed
// by its unique name; the optional FM- id exists so relationship pairs can
// reference the mode the same way as every other node.
type FailureMode struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Category    FailureModeCategory `json:"category,omitempty"`
}

// FMEAEntry is one row of a Failure Mode and Effects Analysis.
//
// RPN is range-checked only; consistency with severity x occurrence x
// detection rating is deliberately not enforced (the detection field here is
// the detection method text, not a rating).
type FMEAEntry struct {
	ID          string `json:"id"`
	FailureMode string `json:"failure_mode"`
	Effect      string `json:"effect"`
	Cause       string `json:"cause"`
	Detection   string `json:"detection"`
	Severity    *int   `json:"severity,omitempty"`   // 1-10
	Occurrence  *int   `json:"occurrence,omitempty"` // 1-10
	RPN         *int   `json:"rpn,omitempty"`        // 1-1000
}

// TestCase is a verification test case.
type TestCase struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Status        TestStatus    `json:"status"`
	TestType      TestType      `json:"test_type,omitempty"`
	CoverageLevel CoverageLevel `json:"coverage_level,omitempty"`
	Description   string        `json:"description,omitempty"`
}

// DefectInstance is a defect observed in the field or during testing.
type DefectInstance struct {
	ID           string         `json:"id"`
	Description  string         `json:"description"`
	Severity     DefectSeverity `json:"severity"`
	Status       DefectStatus   `json:"status"`
	Source       DefectSource   `json:"source"`
	DetectedDate string         `json:"detected_date,omitempty"` // RFC 3339
}
