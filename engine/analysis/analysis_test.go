package analysis

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/safetygraph/safetygraph/engine/store"
)

// --- Mock infrastructure ---

type mockResult struct {
	records []*neo4j.Record
	idx     int
}

func (r *mockResult) Next(_ context.Context) bool {
	if r.idx < len(r.records) {
		r.idx++
		return true
	}
	return false
}

func (r *mockResult) Record() *neo4j.Record { return r.records[r.idx-1] }
func (r *mockResult) Err() error            { return nil }

func rows(recs ...*neo4j.Record) store.CypherResult { return &mockResult{records: recs} }

func row(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

type mockSession struct {
	runFn func(cypher string, params map[string]any) (store.CypherResult, error)
}

func (s *mockSession) Run(_ context.Context, cypher string, params map[string]any) (store.CypherResult, error) {
	return s.runFn(cypher, params)
}

func (s *mockSession) ExecuteWrite(ctx context.Context, work func(tx store.CypherRunner) (any, error)) (any, error) {
	return work(s)
}

func (s *mockSession) Close(_ context.Context) error { return nil }

type mockOpener struct {
	session *mockSession
}

func (o *mockOpener) OpenSession(_ context.Context) store.CypherSession { return o.session }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAnalyzer(runFn func(cypher string, params map[string]any) (store.CypherResult, error)) *Analyzer {
	return New(store.NewWithOpener(&mockOpener{session: &mockSession{runFn: runFn}}, testLogger()), testLogger())
}

var coverageKeys = []string{"hazard_id", "description", "asil", "safety_goals", "fsrs", "tsrs", "test_cases"}

func coverageRow(id, description, asil string, goals, fsrs, tsrs, tcs []any) *neo4j.Record {
	return row(coverageKeys, []any{id, description, asil, goals, fsrs, tsrs, tcs})
}

// --- Helper tests ---

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, def, max, want int
	}{
		{0, 100, 1000, 100},
		{-5, 100, 1000, 100},
		{50, 100, 1000, 50},
		{5000, 100, 1000, 1000},
		{0, 20, 100, 20},
		{101, 20, 100, 100},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.def, tt.max); got != tt.want {
			t.Errorf("clampLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.def, tt.max, got, tt.want)
		}
	}
}
