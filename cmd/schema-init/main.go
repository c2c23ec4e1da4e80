// Command schema-init creates the uniqueness constraints and indexes the
// graph needs before any import runs. Safe to re-run: every statement uses
// IF NOT EXISTS.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/safetygraph/safetygraph/engine/schema"
)

// Every node kind is addressed by id in relationship merges, so each gets a
// uniqueness constraint on id. FailureMode merges by name instead.
var constraints = []struct {
	name     string
	label    string
	property string
}{
	{"hazard_id", schema.LabelHazard, "id"},
	{"scenario_id", schema.LabelScenario, "id"},
	{"safety_goal_id", schema.LabelSafetyGoal, "id"},
	{"fsr_id", schema.LabelFSR, "id"},
	{"tsr_id", schema.LabelTSR, "id"},
	{"component_id", schema.LabelComponent, "id"},
	{"function_id", schema.LabelFunction, "id"},
	{"failure_mode_name", schema.LabelFailureMode, "name"},
	{"fmea_entry_id", schema.LabelFMEAEntry, "id"},
	{"test_case_id", schema.LabelTestCase, "id"},
	{"defect_id", schema.LabelDefect, "id"},
}

var indexes = []struct {
	name     string
	label    string
	property string
}{
	{"hazard_asil", schema.LabelHazard, "asil"},
	{"safety_goal_asil", schema.LabelSafetyGoal, "asil"},
	{"fsr_asil", schema.LabelFSR, "asil"},
	{"tsr_asil_decomposition", schema.LabelTSR, "asil_decomposition"},
	{"component_type", schema.LabelComponent, "component_type"},
	{"test_case_status", schema.LabelTestCase, "status"},
	{"defect_status", schema.LabelDefect, "status"},
	{"defect_severity", schema.LabelDefect, "severity"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	neo4jURL := envOr("NEO4J_URL", "neo4j://localhost:7687")
	neo4jUser := envOr("NEO4J_USER", "neo4j")
	neo4jPass := envOr("NEO4J_PASS", "password")

	driver, err := neo4j.NewDriverWithContext(neo4jURL, neo4j.BasicAuth(neo4jUser, neo4jPass, ""))
	if err != nil {
		log.Fatalf("neo4j connect: %v", err)
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatalf("neo4j unreachable at %s: %v", neo4jURL, err)
	}

	sess := driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	for _, c := range constraints {
		stmt := fmt.Sprintf(
			"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			c.name, c.label, c.property)
		if _, err := sess.Run(ctx, stmt, nil); err != nil {
			log.Fatalf("create constraint %s: %v", c.name, err)
		}
		log.Printf("constraint %s: %s.%s unique", c.name, c.label, c.property)
	}

	for _, idx := range indexes {
		stmt := fmt.Sprintf(
			"CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.%s)",
			idx.name, idx.label, idx.property)
		if _, err := sess.Run(ctx, stmt, nil); err != nil {
			log.Fatalf("create index %s: %v", idx.name, err)
		}
		log.Printf("index %s: %s.%s", idx.name, idx.label, idx.property)
	}

	log.Printf("schema ready: %d constraints, %d indexes", len(constraints), len(indexes))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
