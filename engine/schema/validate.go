package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ID patterns per node kind.
var (
	hazardIDRegex      = regexp.MustCompile(`^H-[\w-]+$`)
	scenarioIDRegex    = regexp.MustCompile(`^(SC|SCN)-[\w-]+$`)
	safetyGoalIDRegex  = regexp.MustCompile(`^SG-[\w-]+$`)
	fsrIDRegex         = regexp.MustCompile(`^FSR-[\w-]+$`)
	tsrIDRegex         = regexp.MustCompile(`^TSR-[\w-]+$`)
	componentIDRegex   = regexp.MustCompile(`^(C|CMP)-[\w-]+$`)
	functionIDRegex    = regexp.MustCompile(`^(FN|F)-[\w-]+$`)
	failureModeIDRegex = regexp.MustCompile(`^FM-[\w-]+$`)
	fmeaEntryIDRegex   = regexp.MustCompile(`^FMEA-[\w-]+$`)
	testCaseIDRegex    = regexp.MustCompile(`^TC-[\w-]+$`)
	defectIDRegex      = regexp.MustCompile(`^D-[\w-]+$`)
)

func checkRange(field string, v *int, min, max int) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return NewValidationError(field, fmt.Sprintf("%d", *v), ErrOutOfRange)
	}
	return nil
}

// checkText enforces required non-empty text with a character cap.
func checkText(field, val string, max int) error {
	if strings.TrimSpace(val) == "" {
		return NewValidationError(field, val, ErrMissingField)
	}
	return checkLen(field, val, max)
}

// checkLen caps optional text; empty is fine.
func checkLen(field, val string, max int) error {
	if utf8.RuneCountInString(val) > max {
		return NewValidationError(field, fmt.Sprintf("%d chars", utf8.RuneCountInString(val)), ErrTooLong)
	}
	return nil
}

// Validate checks the hazard against its schema.
func (h Hazard) Validate() error {
	if !hazardIDRegex.MatchString(h.ID) {
		return NewValidationError("id", h.ID, ErrBadID)
	}
	if err := checkText("description", h.Description, 500); err != nil {
		return err
	}
	if !ValidASILs[h.ASIL] {
		return NewValidationError("asil", string(h.ASIL), ErrBadEnum)
	}
	if err := checkRange("severity", h.Severity, 0, 3); err != nil {
		return err
	}
	if err := checkRange("exposure", h.Exposure, 0, 4); err != nil {
		return err
	}
	return checkRange("controllability", h.Controllability, 0, 3)
}

// Validate checks the scenario against its schema.
func (s Scenario) Validate() error {
	if !scenarioIDRegex.MatchString(s.ID) {
		return NewValidationError("id", s.ID, ErrBadID)
	}
	if err := checkText("name", s.Name, 200); err != nil {
		return err
	}
	return checkLen("description", s.Description, 1000)
}

// Validate checks the safety goal against its schema. QM is not a valid
// safety goal ASIL.
func (g SafetyGoal) Validate() error {
	if !safetyGoalIDRegex.MatchString(g.ID) {
		return NewValidationError("id", g.ID, ErrBadID)
	}
	if err := checkText("description", g.Description, 500); err != nil {
		return err
	}
	if !ValidASILs[g.ASIL] {
		return NewValidationError("asil", string(g.ASIL), ErrBadEnum)
	}
	if g.ASIL == ASILQM {
		return NewValidationError("asil", string(g.ASIL), ErrQMForbidden)
	}
	return nil
}

// Validate checks the FSR against its schema. QM is not a valid FSR ASIL.
func (r FSR) Validate() error {
	if !fsrIDRegex.MatchString(r.ID) {
		return NewValidationError("id", r.ID, ErrBadID)
	}
	if err := checkText("text", r.Text, 1000); err != nil {
		return err
	}
	if !ValidASILs[r.ASIL] {
		return NewValidationError("asil", string(r.ASIL), ErrBadEnum)
	}
	if r.ASIL == ASILQM {
		return NewValidationError("asil", string(r.ASIL), ErrQMForbidden)
	}
	return nil
}

// Validate checks the TSR against its schema.
func (r TSR) Validate() error {
	if !tsrIDRegex.MatchString(r.ID) {
		return NewValidationError("id", r.ID, ErrBadID)
	}
	if err := checkText("text", r.Text, 1000); err != nil {
		return err
	}
	return checkLen("asil_decomposition", r.ASILDecomposition, 50)
}

// Validate checks the component against its schema.
func (c Component) Validate() error {
	if !componentIDRegex.MatchString(c.ID) {
		return NewValidationError("id", c.ID, ErrBadID)
	}
	if err := checkText("name", c.Name, 200); err != nil {
		return err
	}
	if !ValidComponentTypes[c.ComponentType] {
		return NewValidationError("component_type", string(c.ComponentType), ErrBadEnum)
	}
	return checkLen("version", c.Version, 50)
}

// Validate checks the function against its schema.
func (f Function) Validate() error {
	if !functionIDRegex.MatchString(f.ID) {
		return NewValidationError("id", f.ID, ErrBadID)
	}
	if err := checkText("name", f.Name, 200); err != nil {
		return err
	}
	return checkLen("description", f.Description, 1000)
}

// Validate checks the failure mode against its schema.
func (m FailureMode) Validate() error {
	if m.ID != "" && !failureModeIDRegex.MatchString(m.ID) {
		return NewValidationError("id", m.ID, ErrBadID)
	}
	if err := checkText("name", m.Name, 200); err != nil {
		return err
	}
	if m.Category != "" && !ValidFailureModeCategories[m.Category] {
		return NewValidationError("category", string(m.Category), ErrBadEnum)
	}
	return checkLen("description", m.Description, 1000)
}

// Validate checks the FMEA entry against its schema. RPN is only checked
// against its [1,1000] range, not against the severity/occurrence/detection
// product.
func (e FMEAEntry) Validate() error {
	if !fmeaEntryIDRegex.MatchString(e.ID) {
		return NewValidationError("id", e.ID, ErrBadID)
	}
	for _, f := range []struct {
		field string
		val   string
		max   int
	}{
		{"failure_mode", e.FailureMode, 200},
		{"effect", e.Effect, 500},
		{"cause", e.Cause, 500},
		{"detection", e.Detection, 200},
	} {
		if err := checkText(f.field, f.val, f.max); err != nil {
			return err
		}
	}
	if err := checkRange("severity", e.Severity, 1, 10); err != nil {
		return err
	}
	if err := checkRange("occurrence", e.Occurrence, 1, 10); err != nil {
		return err
	}
	return checkRange("rpn", e.RPN, 1, 1000)
}

// Validate checks the test case against its schema.
func (t TestCase) Validate() error {
	if !testCaseIDRegex.MatchString(t.ID) {
		return NewValidationError("id", t.ID, ErrBadID)
	}
	if err := checkText("name", t.Name, 200); err != nil {
		return err
	}
	if !ValidTestStatuses[t.Status] {
		return NewValidationError("status", string(t.Status), ErrBadEnum)
	}
	if t.TestType != "" && !ValidTestTypes[t.TestType] {
		return NewValidationError("test_type", string(t.TestType), ErrBadEnum)
	}
	if t.CoverageLevel != "" && !ValidCoverageLevels[t.CoverageLevel] {
		return NewValidationError("coverage_level", string(t.CoverageLevel), ErrBadEnum)
	}
	return checkLen("description", t.Description, 1000)
}

// Validate checks the defect against its schema.
func (d DefectInstance) Validate() error {
	if !defectIDRegex.MatchString(d.ID) {
		return NewValidationError("id", d.ID, ErrBadID)
	}
	if err := checkText("description", d.Description, 1000); err != nil {
		return err
	}
	if !ValidDefectSeverities[d.Severity] {
		return NewValidationError("severity", string(d.Severity), ErrBadEnum)
	}
	if !ValidDefectStatuses[d.Status] {
		return NewValidationError("status", string(d.Status), ErrBadEnum)
	}
	if !ValidDefectSources[d.Source] {
		return NewValidationError("source", string(d.Source), ErrBadEnum)
	}
	return nil
}
