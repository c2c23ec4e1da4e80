// Package imports implements the artifact import engine. Each artifact
// family (HARA, FMEA, requirements, tests, defects) has one operation that
// validates the whole batch up front, merges nodes, and creates
// relationships by (source, target) ID pair.
//
// Node validation is all-or-nothing per family: one invalid entity rejects
// the family before any write. Node and relationship creation afterwards is
// best-effort per item, each write in its own transaction, so one bad item
// never aborts the rest of the batch.
package imports

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/safetygraph/safetygraph/engine/schema"
	"github.com/safetygraph/safetygraph/engine/store"
)

// EventSink receives import completion events. Implementations publish to
// the message bus; a nil sink disables publishing (CLI usage).
type EventSink interface {
	Publish(ctx context.Context, subject string, v any) error
}

// Importer writes validated safety artifacts into the graph.
type Importer struct {
	store  *store.Store
	log    *slog.Logger
	events EventSink
}

// New creates an Importer. events may be nil.
func New(st *store.Store, log *slog.Logger, events EventSink) *Importer {
	return &Importer{store: st, log: log, events: events}
}

// FailedItem records one item that could not be written.
type FailedItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult is the outcome of one best-effort batch fold: how many items
// were written, and which were skipped with why. Responses report only the
// count; the failure list is kept for logging and future surfacing.
type BatchResult struct {
	Created int
	Failed  []FailedItem
}

type entity interface {
	Validate() error
	Props() map[string]any
}

// validateAll rejects the whole slice on the first invalid entity.
func validateAll[T entity](items []T) error {
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateRelKinds rejects the request if any relationship kind name is
// outside the allow-list. Kind names end up interpolated into Cypher
// pattern position, so this check gates every relationship write.
func validateRelKinds(rels map[string][]schema.RelPair) error {
	for name := range rels {
		if _, err := schema.ParseRelKind(name); err != nil {
			return err
		}
	}
	return nil
}

// mergeNodes upserts one node per item, each in its own transaction.
// Matching is by the key property, so re-imports update in place.
func (im *Importer) mergeNodes(ctx context.Context, label, keyProp string, items []entity) BatchResult {
	cypher := fmt.Sprintf(`
MERGE (n:%s {%s: $key})
ON CREATE SET n.created_at = datetime()
SET n += $props, n.updated_at = datetime()
RETURN n.%s AS key`, label, keyProp, keyProp)

	var res BatchResult
	for _, it := range items {
		props := it.Props()
		key, _ := props[keyProp].(string)
		_, err := im.store.RunWrite(ctx, cypher, map[string]any{"key": key, "props": props})
		if err != nil {
			im.log.Warn("node write failed", "label", label, "key", key, "err", err)
			res.Failed = append(res.Failed, FailedItem{ID: key, Reason: err.Error()})
			continue
		}
		res.Created++
	}
	im.log.Info("imported nodes", "label", label, "created", res.Created, "failed", len(res.Failed))
	return res
}

func asEntities[T entity](items []T) []entity {
	out := make([]entity, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// createComponents deduplicates by existence check: a component whose id is
// already in the graph is skipped silently and not counted as created. A
// failed existence check skips the component too, but as a recorded failure.
func (im *Importer) createComponents(ctx context.Context, components []schema.Component) BatchResult {
	var fresh []entity
	var failed []FailedItem
	for _, c := range components {
		exists, err := im.store.NodeExists(ctx, c.ID)
		if err != nil {
			im.log.Warn("component existence check failed", "id", c.ID, "err", err)
			failed = append(failed, FailedItem{ID: c.ID, Reason: err.Error()})
			continue
		}
		if exists {
			im.log.Debug("component already exists, skipping", "id", c.ID)
			continue
		}
		fresh = append(fresh, c)
	}
	res := BatchResult{Failed: failed}
	if len(fresh) == 0 {
		return res
	}
	merged := im.mergeNodes(ctx, schema.LabelComponent, "id", fresh)
	res.Created = merged.Created
	res.Failed = append(res.Failed, merged.Failed...)
	return res
}

// createRelationships creates each (source, target) pair independently.
// A pair with a missing endpoint is logged and skipped; the returned count
// reflects only pairs that were written. Kind names must already have
// passed validateRelKinds.
func (im *Importer) createRelationships(ctx context.Context, rels map[string][]schema.RelPair) int {
	total := 0
	for name, pairs := range rels {
		kind, err := schema.ParseRelKind(name)
		if err != nil {
			im.log.Warn("unknown relationship kind", "kind", name, "err", err)
			continue
		}
		cypher := fmt.Sprintf(`
MATCH (a {id: $source_id})
MATCH (b {id: $target_id})
MERGE (a)-[r:%s]->(b)
RETURN count(r) AS created`, kind)

		created := 0
		for _, pair := range pairs {
			records, err := im.store.RunWrite(ctx, cypher, map[string]any{
				"source_id": pair.Source(),
				"target_id": pair.Target(),
			})
			if err != nil {
				im.log.Warn("relationship write failed",
					"kind", kind, "source", pair.Source(), "target", pair.Target(), "err", err)
				continue
			}
			if len(records) == 0 || countOf(records[0]) == 0 {
				im.log.Warn("relationship endpoint missing, skipping",
					"kind", kind, "source", pair.Source(), "target", pair.Target())
				continue
			}
			created++
		}
		im.log.Info("imported relationships", "kind", kind, "created", created, "requested", len(pairs))
		total += created
	}
	return total
}

func countOf(rec store.Record) int64 {
	c, _ := rec["created"].(int64)
	return c
}

// publish emits an import completion event, best effort. Publish failures
// never fail the import.
func (im *Importer) publish(ctx context.Context, family string, stats any) {
	if im.events == nil {
		return
	}
	subject := "safetygraph.imports." + family
	if err := im.events.Publish(ctx, subject, stats); err != nil {
		im.log.Warn("import event publish failed", "subject", subject, "err", err)
	}
}
