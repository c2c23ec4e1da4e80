package schema

// Props converters map node types to Neo4j property maps. Optional fields
// that are unset are omitted rather than written as empty values, matching
// the merge-by-id update semantics of re-imports.

func setStr(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

func setInt(m map[string]any, key string, val *int) {
	if val != nil {
		m[key] = *val
	}
}

// Props returns the hazard's graph properties.
func (h Hazard) Props() map[string]any {
	m := map[string]any{
		"id":          h.ID,
		"description": h.Description,
		"asil":        string(h.ASIL),
	}
	setInt(m, "severity", h.Severity)
	setInt(m, "exposure", h.Exposure)
	setInt(m, "controllability", h.Controllability)
	return m
}

// Props returns the scenario's graph properties.
func (s Scenario) Props() map[string]any {
	m := map[string]any{"id": s.ID, "name": s.Name}
	setStr(m, "description", s.Description)
	setStr(m, "operating_mode", s.OperatingMode)
	setStr(m, "environment", s.Environment)
	return m
}

// Props returns the safety goal's graph properties.
func (g SafetyGoal) Props() map[string]any {
	m := map[string]any{
		"id":          g.ID,
		"description": g.Description,
		"asil":        string(g.ASIL),
	}
	setStr(m, "safe_state", g.SafeState)
	setStr(m, "fault_tolerance_time", g.FaultToleranceTime)
	return m
}

// Props returns the FSR's graph properties.
func (r FSR) Props() map[string]any {
	m := map[string]any{
		"id":   r.ID,
		"text": r.Text,
		"asil": string(r.ASIL),
	}
	setStr(m, "status", r.Status)
	return m
}

// Props returns the TSR's graph properties.
func (r TSR) Props() map[string]any {
	m := map[string]any{"id": r.ID, "text": r.Text}
	setStr(m, "asil_decomposition", r.ASILDecomposition)
	setStr(m, "verification_method", r.VerificationMethod)
	return m
}

// Props returns the component's graph properties.
func (c Component) Props() map[string]any {
	m := map[string]any{
		"id":             c.ID,
		"name":           c.Name,
		"component_type": string(c.ComponentType),
	}
	setStr(m, "supplier", c.Supplier)
	setStr(m, "part_number", c.PartNumber)
	setStr(m, "version", c.Version)
	return m
}

// Props returns the function's graph properties.
func (f Function) Props() map[string]any {
	m := map[string]any{"id": f.ID, "name": f.Name}
	setStr(m, "description", f.Description)
	return m
}

// Props returns the failure mode's graph properties.
func (m FailureMode) Props() map[string]any {
	p := map[string]any{"name": m.Name}
	setStr(p, "id", m.ID)
	setStr(p, "description", m.Description)
	setStr(p, "category", string(m.Category))
	return p
}

// Props returns the FMEA entry's graph properties.
func (e FMEAEntry) Props() map[string]any {
	m := map[string]any{
		"id":           e.ID,
		"failure_mode": e.FailureMode,
		"effect":       e.Effect,
		"cause":        e.Cause,
		"detection":    e.Detection,
	}
	setInt(m, "severity", e.Severity)
	setInt(m, "occurrence", e.Occurrence)
	setInt(m, "rpn", e.RPN)
	return m
}

// Props returns the test case's graph properties.
func (t TestCase) Props() map[string]any {
	m := map[string]any{
		"id":     t.ID,
		"name":   t.Name,
		"status": string(t.Status),
	}
	setStr(m, "test_type", string(t.TestType))
	setStr(m, "coverage_level", string(t.CoverageLevel))
	setStr(m, "description", t.Description)
	return m
}

// Props returns the defect's graph properties.
func (d DefectInstance) Props() map[string]any {
	m := map[string]any{
		"id":          d.ID,
		"description": d.Description,
		"severity":    string(d.Severity),
		"status":      string(d.Status),
		"source":      string(d.Source),
	}
	setStr(m, "detected_date", d.DetectedDate)
	return m
}
