// Package analysis implements the read-only coverage, impact, traceability,
// and search queries over the safety graph. All traversals are bounded: the
// coverage chain is the fixed 4-hop
// Hazard-MITIGATED_BY->SafetyGoal-REFINED_TO->FSR-REFINED_TO->TSR-VERIFIED_BY->TestCase
// pattern, and requirement traceability is depth-capped.
package analysis

import (
	"log/slog"
	"sort"

	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/engine/store"
	"github.com/safetygraph/safetygraph/pkg/fn"
)

// Analyzer computes derived views over the graph. It never mutates it.
type Analyzer struct {
	store *store.Store
	log   *slog.Logger
}

// New creates an Analyzer.
func New(st *store.Store, log *slog.Logger) *Analyzer {
	return &Analyzer{store: st, log: log}
}

// asilRankCase ranks ASIL levels in Cypher ORDER BY position. A plain
// string sort would put QM above D.
const asilRankCase = `CASE h.asil WHEN 'D' THEN 4 WHEN 'C' THEN 3 WHEN 'B' THEN 2 WHEN 'A' THEN 1 WHEN 'QM' THEN 0 ELSE -1 END`

// clampLimit bounds a caller-supplied result limit.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func intOf(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// stringsOf converts a Cypher collect() list into a string slice.
func stringsOf(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	return fn.FilterMap(items, func(it any) (string, bool) {
		s, ok := it.(string)
		return s, ok
	})
}

// sortByASILThenID orders descending by ASIL stringency, ties by id.
func sortByASILThenID[T any](items []T, asil func(T) string, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := schema.ASIL(asil(items[i])).Rank(), schema.ASIL(asil(items[j])).Rank()
		if ri != rj {
			return ri > rj
		}
		return id(items[i]) < id(items[j])
	})
}
