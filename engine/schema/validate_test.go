package schema

import (
	"errors"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestHazardValidate(t *testing.T) {
	valid := Hazard{ID: "H-001", Description: "Unintended acceleration", ASIL: ASILD}

	tests := []struct {
		name    string
		mutate  func(h *Hazard)
		wantErr error
	}{
		{"valid", func(h *Hazard) {}, nil},
		{"valid with ratings", func(h *Hazard) {
			h.Severity = intPtr(3)
			h.Exposure = intPtr(4)
			h.Controllability = intPtr(0)
		}, nil},
		{"bad id prefix", func(h *Hazard) { h.ID = "HZ-001" }, ErrBadID},
		{"empty id", func(h *Hazard) { h.ID = "" }, ErrBadID},
		{"blank description", func(h *Hazard) { h.Description = "   " }, ErrMissingField},
		{"description at cap", func(h *Hazard) { h.Description = strings.Repeat("x", 500) }, nil},
		{"description over cap", func(h *Hazard) { h.Description = strings.Repeat("x", 501) }, ErrTooLong},
		{"bad asil", func(h *Hazard) { h.ASIL = "E" }, ErrBadEnum},
		{"severity too high", func(h *Hazard) { h.Severity = intPtr(4) }, ErrOutOfRange},
		{"exposure negative", func(h *Hazard) { h.Exposure = intPtr(-1) }, ErrOutOfRange},
		{"controllability too high", func(h *Hazard) { h.Controllability = intPtr(4) }, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid
			tt.mutate(&h)
			err := h.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if !IsValidation(err) {
				t.Fatal("expected a ValidationError")
			}
		})
	}
}

func TestSafetyGoalRejectsQM(t *testing.T) {
	g := SafetyGoal{ID: "SG-001", Description: "Prevent unintended torque", ASIL: ASILQM}
	if err := g.Validate(); !errors.Is(err, ErrQMForbidden) {
		t.Fatalf("got %v, want ErrQMForbidden", err)
	}
}

func TestFSRRejectsQM(t *testing.T) {
	r := FSR{ID: "FSR-001", Text: "Torque request shall be plausibilised", ASIL: ASILQM}
	if err := r.Validate(); !errors.Is(err, ErrQMForbidden) {
		t.Fatalf("got %v, want ErrQMForbidden", err)
	}
}

func TestScenarioIDPrefixes(t *testing.T) {
	for _, id := range []string{"SC-001", "SCN-highway-01"} {
		s := Scenario{ID: id, Name: "Highway cruise"}
		if err := s.Validate(); err != nil {
			t.Fatalf("%s: unexpected error: %v", id, err)
		}
	}
	s := Scenario{ID: "S-001", Name: "Highway cruise"}
	if err := s.Validate(); !errors.Is(err, ErrBadID) {
		t.Fatalf("got %v, want ErrBadID", err)
	}
}

func TestComponentValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Component
		wantErr error
	}{
		{"valid C prefix", Component{ID: "C-100", Name: "Brake ECU", ComponentType: ComponentHardware}, nil},
		{"valid CMP prefix", Component{ID: "CMP-100", Name: "Brake ECU", ComponentType: ComponentSoftware}, nil},
		{"bad type", Component{ID: "C-100", Name: "Brake ECU", ComponentType: "firmware"}, ErrBadEnum},
		{"missing name", Component{ID: "C-100", ComponentType: ComponentHardware}, ErrMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFMEAEntryValidate(t *testing.T) {
	valid := FMEAEntry{
		ID:          "FMEA-001",
		FailureMode: "Sensor stuck at value",
		Effect:      "Wrong torque request",
		Cause:       "Solder joint fatigue",
		Detection:   "Signal range check",
	}

	tests := []struct {
		name    string
		mutate  func(e *FMEAEntry)
		wantErr error
	}{
		{"valid", func(e *FMEAEntry) {}, nil},
		{"valid with ratings", func(e *FMEAEntry) {
			e.Severity = intPtr(10)
			e.Occurrence = intPtr(1)
			e.RPN = intPtr(1000)
		}, nil},
		{"severity zero", func(e *FMEAEntry) { e.Severity = intPtr(0) }, ErrOutOfRange},
		{"occurrence too high", func(e *FMEAEntry) { e.Occurrence = intPtr(11) }, ErrOutOfRange},
		{"rpn too high", func(e *FMEAEntry) { e.RPN = intPtr(1001) }, ErrOutOfRange},
		{"missing effect", func(e *FMEAEntry) { e.Effect = "" }, ErrMissingField},
		{"bad id", func(e *FMEAEntry) { e.ID = "FM-001" }, ErrBadID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// RPN inconsistent with severity x occurrence must still pass: only the
// range is checked.
func TestFMEAEntryRPNRangeOnly(t *testing.T) {
	e := FMEAEntry{
		ID:          "FMEA-002",
		FailureMode: "Relay weld",
		Effect:      "Contactor stuck closed",
		Cause:       "Overcurrent",
		Detection:   "Weld check at shutdown",
		Severity:    intPtr(2),
		Occurrence:  intPtr(2),
		RPN:         intPtr(999),
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Length caps as the node model defines them: names 200, hazard and safety
// goal descriptions 500, requirement texts and defect descriptions 1000.
func TestTextLengthCaps(t *testing.T) {
	long := func(n int) string { return strings.Repeat("x", n+1) }

	tests := []struct {
		name string
		err  error
	}{
		{"scenario name", Scenario{ID: "SC-001", Name: long(200)}.Validate()},
		{"safety goal description", SafetyGoal{ID: "SG-001", Description: long(500), ASIL: ASILC}.Validate()},
		{"fsr text", FSR{ID: "FSR-001", Text: long(1000), ASIL: ASILB}.Validate()},
		{"tsr text", TSR{ID: "TSR-001", Text: long(1000)}.Validate()},
		{"component name", Component{ID: "C-001", Name: long(200), ComponentType: ComponentHardware}.Validate()},
		{"failure mode name", FailureMode{Name: long(200)}.Validate()},
		{"fmea effect", FMEAEntry{ID: "FMEA-001", FailureMode: "Stuck", Effect: long(500),
			Cause: "Fatigue", Detection: "Range check"}.Validate()},
		{"test case name", TestCase{ID: "TC-001", Name: long(200), Status: TestPassed}.Validate()},
		{"defect description", DefectInstance{ID: "D-001", Description: long(1000),
			Severity: DefectMinor, Status: DefectOpen, Source: SourceField}.Validate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrTooLong) {
				t.Fatalf("got %v, want ErrTooLong", tt.err)
			}
		})
	}
}

func TestOptionalTextCaps(t *testing.T) {
	c := Component{ID: "C-001", Name: "Brake ECU", ComponentType: ComponentHardware,
		Version: strings.Repeat("9", 51)}
	if err := c.Validate(); !errors.Is(err, ErrTooLong) {
		t.Fatalf("got %v, want ErrTooLong for long version", err)
	}

	s := Scenario{ID: "SC-001", Name: "Highway cruise", Description: strings.Repeat("x", 1000)}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error for description at cap: %v", err)
	}
}

func TestFailureModeValidate(t *testing.T) {
	if err := (FailureMode{Name: "Open circuit", Category: FailureElectrical}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (FailureMode{Name: ""}).Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatal("expected ErrMissingField for blank name")
	}
	if err := (FailureMode{Name: "Open circuit", Category: "cosmic"}).Validate(); !errors.Is(err, ErrBadEnum) {
		t.Fatal("expected ErrBadEnum for unknown category")
	}
}

func TestTestCaseValidate(t *testing.T) {
	valid := TestCase{ID: "TC-001", Name: "Torque plausibility", Status: TestPassed}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Status = "done"
	if err := bad.Validate(); !errors.Is(err, ErrBadEnum) {
		t.Fatal("expected ErrBadEnum for unknown status")
	}

	typed := valid
	typed.TestType = TestTypeHIL
	typed.CoverageLevel = CoverageMCDC
	if err := typed.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefectValidate(t *testing.T) {
	valid := DefectInstance{
		ID:          "D-001",
		Description: "ECU resets under load dump",
		Severity:    DefectCritical,
		Status:      DefectOpen,
		Source:      SourceField,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Source = "customer"
	if err := bad.Validate(); !errors.Is(err, ErrBadEnum) {
		t.Fatal("expected ErrBadEnum for unknown source")
	}
}
