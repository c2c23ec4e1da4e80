// Package main implements the safety graph API server: artifact import
// endpoints and read-only coverage/impact/traceability analytics over the
// Neo4j graph.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/safetygraph/safetygraph/engine/analysis"
	"github.com/safetygraph/safetygraph/engine/imports"
	"github.com/safetygraph/safetygraph/engine/store"
	"github.com/safetygraph/safetygraph/pkg/metrics"
	"github.com/safetygraph/safetygraph/pkg/mid"
	"github.com/safetygraph/safetygraph/pkg/natsutil"
)

// Config holds all environment-based configuration.
type Config struct {
	Port       string
	Env        string // development | production
	Neo4jURL   string
	Neo4jUser  string
	Neo4jPass  string
	NATSURL    string // empty disables import events
	CORSOrigin string
	ImportRPS  float64
}

func loadConfig() Config {
	return Config{
		Port:       envOr("PORT", "8000"),
		Env:        envOr("ENV", "production"),
		Neo4jURL:   envOr("NEO4J_URL", "neo4j://localhost:7687"),
		Neo4jUser:  envOr("NEO4J_USER", "neo4j"),
		Neo4jPass:  envOr("NEO4J_PASS", "password"),
		NATSURL:    os.Getenv("NATS_URL"),
		CORSOrigin: envOr("CORS_ORIGIN", "*"),
		ImportRPS:  5,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Neo4j ---
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}
	defer driver.Close(ctx)

	st := store.New(driver, logger)
	if err := st.VerifyConnectivity(ctx); err != nil {
		return err
	}

	// --- Connect to NATS (optional) ---
	var events imports.EventSink
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()
		events = natsutil.NewSink(nc)
	}

	srv := newServer(st, logger, events, cfg.Env == "development")

	handler := mid.Chain(srv.routes(cfg),
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("safetygraph-api"),
	)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port, "env", cfg.Env)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutCtx)
}

// server bundles the engines behind the HTTP handlers.
type server struct {
	store    *store.Store
	importer *imports.Importer
	analyzer *analysis.Analyzer
	log      *slog.Logger
	dev      bool
	reg      *metrics.Registry
}

func newServer(st *store.Store, logger *slog.Logger, events imports.EventSink, dev bool) *server {
	return &server{
		store:    st,
		importer: imports.New(st, logger, events),
		analyzer: analysis.New(st, logger),
		log:      logger,
		dev:      dev,
		reg:      metrics.New(),
	}
}

func (s *server) routes(cfg Config) http.Handler {
	mux := http.NewServeMux()

	importLimit := mid.RateLimit(cfg.ImportRPS, 10)
	mux.Handle("POST /api/v1/import/hara", importLimit(http.HandlerFunc(s.handleImportHARA)))
	mux.Handle("POST /api/v1/import/fmea", importLimit(http.HandlerFunc(s.handleImportFMEA)))
	mux.Handle("POST /api/v1/import/requirements", importLimit(http.HandlerFunc(s.handleImportRequirements)))
	mux.Handle("POST /api/v1/import/tests", importLimit(http.HandlerFunc(s.handleImportTests)))
	mux.Handle("POST /api/v1/import/defects", importLimit(http.HandlerFunc(s.handleImportDefects)))

	mux.HandleFunc("PATCH /api/v1/defects/{id}/status", s.handleUpdateDefectStatus)
	mux.HandleFunc("PATCH /api/v1/tests/{id}/status", s.handleUpdateTestStatus)

	mux.HandleFunc("GET /api/v1/analytics/coverage/hazards/{id}", s.counted(s.handleHazardCoverage))
	mux.HandleFunc("GET /api/v1/analytics/coverage/hazards", s.counted(s.handleAllHazardsCoverage))
	mux.HandleFunc("GET /api/v1/analytics/coverage/statistics", s.counted(s.handleCoverageStatistics))
	mux.HandleFunc("GET /api/v1/analytics/impact/components/{id}", s.counted(s.handleComponentImpact))
	mux.HandleFunc("GET /api/v1/analytics/impact/components", s.counted(s.handleAllComponentsImpact))
	mux.HandleFunc("GET /api/v1/analytics/traceability/hazards/{id}", s.counted(s.handleHazardTraceability))
	mux.HandleFunc("GET /api/v1/analytics/traceability/requirements/{id}", s.counted(s.handleRequirementTraceability))
	mux.HandleFunc("GET /api/v1/analytics/search/hazards", s.counted(s.handleSearchHazards))
	mux.HandleFunc("GET /api/v1/analytics/search/components", s.counted(s.handleSearchComponents))
	mux.HandleFunc("GET /api/v1/analytics/hazards", s.counted(s.handleFilterHazards))
	mux.HandleFunc("GET /api/v1/analytics/statistics", s.counted(s.handleDatabaseStatistics))

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", s.reg.Handler())

	return s.timed(mux)
}
