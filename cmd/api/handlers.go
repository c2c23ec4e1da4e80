package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/safetygraph/safetygraph/engine/imports"
	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/pkg/metrics"
)

// envelope is the uniform response shape.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func (s *server) respond(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(envelope{Status: "success", Message: message, Data: data})
}

// respondError maps the error taxonomy onto status codes: validation 400,
// not found 404, everything else 500. Internal detail is exposed only in
// development.
func (s *server) respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	message := "internal server error"
	switch {
	case schema.IsValidation(err):
		code = http.StatusBadRequest
		message = err.Error()
	case schema.IsNotFound(err):
		code = http.StatusNotFound
		message = err.Error()
	default:
		s.log.Error("request failed", "err", err)
	}

	env := envelope{Status: "error", Message: message}
	if code == http.StatusInternalServerError && s.dev {
		env.Detail = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	if err != nil {
		return v, schema.NewValidationError("body", "", schema.ErrMissingField)
	}
	return v, nil
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// commaList splits a comma-separated query value, dropping empties.
func commaList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// --- Import handlers ---

func (s *server) countImport(family string) {
	s.reg.Counter(metrics.WithLabels("imports_total", "family", family),
		"Completed import batches").Inc()
}

func (s *server) handleImportHARA(w http.ResponseWriter, r *http.Request) {
	req, err := decode[imports.HARARequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.importer.ImportHARA(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.countImport("hara")
	s.respond(w, http.StatusCreated, "HARA data imported successfully", stats)
}

func (s *server) handleImportFMEA(w http.ResponseWriter, r *http.Request) {
	req, err := decode[imports.FMEARequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.importer.ImportFMEA(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.countImport("fmea")
	s.respond(w, http.StatusCreated, "FMEA data imported successfully", stats)
}

func (s *server) handleImportRequirements(w http.ResponseWriter, r *http.Request) {
	req, err := decode[imports.RequirementsRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.importer.ImportRequirements(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.countImport("requirements")
	s.respond(w, http.StatusCreated, "Requirements imported successfully", stats)
}

func (s *server) handleImportTests(w http.ResponseWriter, r *http.Request) {
	req, err := decode[imports.TestsRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.importer.ImportTests(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.countImport("tests")
	s.respond(w, http.StatusCreated, "Test cases imported successfully", stats)
}

func (s *server) handleImportDefects(w http.ResponseWriter, r *http.Request) {
	req, err := decode[imports.DefectsRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	stats, err := s.importer.ImportDefects(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.countImport("defects")
	s.respond(w, http.StatusCreated, "Defects imported successfully", stats)
}

// --- Status update handlers ---

type defectStatusRequest struct {
	Status string `json:"status"`
}

func (s *server) handleUpdateDefectStatus(w http.ResponseWriter, r *http.Request) {
	req, err := decode[defectStatusRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := r.PathValue("id")
	if err := s.importer.UpdateDefectStatus(r.Context(), id, schema.DefectStatus(req.Status)); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "defect status updated", map[string]string{"id": id, "status": req.Status})
}

type testStatusRequest struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

func (s *server) handleUpdateTestStatus(w http.ResponseWriter, r *http.Request) {
	req, err := decode[testStatusRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := r.PathValue("id")
	if err := s.importer.UpdateTestStatus(r.Context(), id, schema.TestStatus(req.Status), req.Result); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "test status updated", map[string]string{"id": id, "status": req.Status})
}

// --- Analytics handlers ---

// counted wraps an analytics handler with a served-query counter.
func (s *server) counted(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reg.Counter("analytics_queries_total", "Analytics queries served").Inc()
		h(w, r)
	}
}

// timed observes wall-clock request latency over the whole mux.
func (s *server) timed(next http.Handler) http.Handler {
	hist := s.reg.Histogram("http_request_duration_seconds", "HTTP request latency", nil)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		hist.Since(start)
	})
}

func (s *server) handleHazardCoverage(w http.ResponseWriter, r *http.Request) {
	cov, err := s.analyzer.HazardCoverage(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "hazard coverage computed", cov)
}

func (s *server) handleAllHazardsCoverage(w http.ResponseWriter, r *http.Request) {
	all, err := s.analyzer.AllHazardsCoverage(r.Context(), commaList(r.URL.Query().Get("asil")))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "hazard coverage computed", all)
}

func (s *server) handleCoverageStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyzer.CoverageStatistics(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "coverage statistics computed", stats)
}

func (s *server) handleComponentImpact(w http.ResponseWriter, r *http.Request) {
	impact, err := s.analyzer.ComponentImpact(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "component impact computed", impact)
}

func (s *server) handleAllComponentsImpact(w http.ResponseWriter, r *http.Request) {
	ranks, err := s.analyzer.AllComponentsImpact(r.Context(),
		r.URL.Query().Get("component_type"), queryInt(r, "limit"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "component impact ranking computed", ranks)
}

func (s *server) handleHazardTraceability(w http.ResponseWriter, r *http.Request) {
	chains, err := s.analyzer.TraceabilityChains(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "traceability chains computed", chains)
}

func (s *server) handleRequirementTraceability(w http.ResponseWriter, r *http.Request) {
	trace, err := s.analyzer.RequirementTraceability(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "requirement traceability computed", trace)
}

func (s *server) handleSearchHazards(w http.ResponseWriter, r *http.Request) {
	hits, err := s.analyzer.SearchHazards(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "hazard search completed", hits)
}

func (s *server) handleSearchComponents(w http.ResponseWriter, r *http.Request) {
	hits, err := s.analyzer.SearchComponents(r.Context(), r.URL.Query().Get("q"), queryInt(r, "limit"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "component search completed", hits)
}

func (s *server) handleFilterHazards(w http.ResponseWriter, r *http.Request) {
	hits, err := s.analyzer.FilterHazardsByASIL(r.Context(), commaList(r.URL.Query().Get("asil")))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, "hazards filtered", hits)
}

func (s *server) handleDatabaseStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyzer.DatabaseStatistics(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.reg.Gauge("graph_nodes", "Nodes in the graph").Set(stats.Summary.TotalNodes)
	s.reg.Gauge("graph_relationships", "Relationships in the graph").Set(stats.Summary.TotalRelationships)
	s.respond(w, http.StatusOK, "database statistics computed", stats)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.store.HealthCheck(r.Context())
	code := http.StatusOK
	if h.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(h)
}
