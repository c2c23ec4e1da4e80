// Package store provides the graph store adapter: a thin, session-scoped
// query execution layer over the Neo4j driver. Engines depend on the small
// Cypher interfaces here rather than on the driver, so reads and writes can
// be exercised against mock sessions in tests.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CypherResult is the minimal interface needed from a query result.
type CypherResult interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// CypherRunner runs a single Cypher statement.
type CypherRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (CypherResult, error)
}

// CypherSession is the minimal interface needed from a Neo4j session.
type CypherSession interface {
	CypherRunner
	ExecuteWrite(ctx context.Context, work func(tx CypherRunner) (any, error)) (any, error)
	Close(ctx context.Context) error
}

// SessionOpener opens sessions against the graph store.
type SessionOpener interface {
	OpenSession(ctx context.Context) CypherSession
}

// Record is one result row keyed by return alias.
type Record map[string]any

// Store is the process-wide graph store handle. Exactly one Store (and
// therefore one connection pool) per process is a composition-root
// convention, not enforced here.
type Store struct {
	driver neo4j.DriverWithContext
	opener SessionOpener
	log    *slog.Logger
}

// New creates a Store over an already-constructed driver.
func New(driver neo4j.DriverWithContext, log *slog.Logger) *Store {
	return &Store{
		driver: driver,
		opener: &driverOpener{driver: driver},
		log:    log,
	}
}

// NewWithOpener creates a Store with a custom session opener. Used by tests.
func NewWithOpener(opener SessionOpener, log *slog.Logger) *Store {
	return &Store{opener: opener, log: log}
}

// VerifyConnectivity checks the driver can reach the store. Callers treat a
// failure here as fatal to startup.
func (s *Store) VerifyConnectivity(ctx context.Context) error {
	if s.driver == nil {
		return fmt.Errorf("store: no driver configured")
	}
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("store: verify connectivity: %w", err)
	}
	return nil
}

// Close releases the driver and its connection pool.
func (s *Store) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

// RunRead executes a read query in a session-scoped call and returns all
// rows as records.
func (s *Store) RunRead(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	sess := s.opener.OpenSession(ctx)
	defer sess.Close(ctx)

	result, err := sess.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("store: read: %w", err)
	}
	return collectRecords(ctx, result)
}

// RunWrite executes a write query inside a single managed transaction and
// returns all rows as records. The transaction fails atomically on error.
func (s *Store) RunWrite(ctx context.Context, cypher string, params map[string]any) ([]Record, error) {
	sess := s.opener.OpenSession(ctx)
	defer sess.Close(ctx)

	out, err := sess.ExecuteWrite(ctx, func(tx CypherRunner) (any, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return collectRecords(ctx, result)
	})
	if err != nil {
		return nil, fmt.Errorf("store: write: %w", err)
	}
	records, _ := out.([]Record)
	return records, nil
}

// NodeExists reports whether any node with the given id exists.
func (s *Store) NodeExists(ctx context.Context, id string) (bool, error) {
	records, err := s.RunRead(ctx,
		`MATCH (n {id: $id}) RETURN count(n) AS count`,
		map[string]any{"id": id})
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	count, _ := records[0]["count"].(int64)
	return count > 0, nil
}

// NodeCounts returns node counts grouped by label.
func (s *Store) NodeCounts(ctx context.Context) (map[string]int64, error) {
	return s.countsBy(ctx,
		`MATCH (n) UNWIND labels(n) AS label RETURN label AS key, count(*) AS count`)
}

// RelationshipCounts returns relationship counts grouped by type.
func (s *Store) RelationshipCounts(ctx context.Context) (map[string]int64, error) {
	return s.countsBy(ctx,
		`MATCH ()-[r]->() RETURN type(r) AS key, count(*) AS count`)
}

func (s *Store) countsBy(ctx context.Context, cypher string) (map[string]int64, error) {
	records, err := s.RunRead(ctx, cypher, nil)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, rec := range records {
		key, ok := rec["key"].(string)
		if !ok {
			continue
		}
		if c, ok := rec["count"].(int64); ok {
			counts[key] = c
		}
	}
	return counts, nil
}

// collectRecords drains a result into record maps.
func collectRecords(ctx context.Context, result CypherResult) ([]Record, error) {
	var records []Record
	for result.Next(ctx) {
		records = append(records, Record(result.Record().AsMap()))
	}
	if err := result.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
