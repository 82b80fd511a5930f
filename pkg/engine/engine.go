// Package engine orchestrates a full ownership analysis: control
// resolution over every company plus all pattern detectors, producing a
// single Report. The engine owns the run lifecycle (config validation,
// run IDs, timing, warning collection); the actual work lives in
// pkg/resolve and pkg/detect.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-ubo/pkg/detect"
	"github.com/dd0wney/cluso-ubo/pkg/graph"
	"github.com/dd0wney/cluso-ubo/pkg/logging"
	"github.com/dd0wney/cluso-ubo/pkg/metrics"
	"github.com/dd0wney/cluso-ubo/pkg/resolve"
)

// Engine runs analyses over one immutable ownership graph
type Engine struct {
	graph    *graph.OwnershipGraph
	cfg      Config
	log      logging.Logger
	metrics  *metrics.Registry
	resolver *resolve.Resolver

	// warnings carried over from the graph load, prepended to every run
	loadWarnings []string
}

// New creates an engine over a loaded graph. Config validation is the
// only fail-fast path; everything after construction degrades to
// warnings instead of failing.
func New(g *graph.OwnershipGraph, cfg Config, log logging.Logger) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	resolver := resolve.NewResolver(g, resolve.Config{
		MaxDepth:    cfg.MaxDepth,
		VisitBudget: cfg.VisitBudget,
		Workers:     cfg.Workers,
	}, log.With(logging.Component("resolver")))

	return &Engine{
		graph:    g,
		cfg:      cfg,
		log:      log,
		resolver: resolver,
	}, nil
}

// WithMetrics instruments the engine and its resolver with the registry
func (e *Engine) WithMetrics(m *metrics.Registry) *Engine {
	e.metrics = m
	e.resolver.WithMetrics(m)
	return e
}

// WithLoadReport folds a graph load's data-quality errors into the
// warnings of every subsequent run
func (e *Engine) WithLoadReport(report *graph.LoadReport) *Engine {
	for _, le := range report.Errors {
		e.loadWarnings = append(e.loadWarnings, "load: "+le.Error())
	}
	if report.Unparsed > 0 {
		e.loadWarnings = append(e.loadWarnings,
			fmt.Sprintf("load: %d control descriptors fell back to the maximal-uncertainty range", report.Unparsed))
	}
	return e
}

// ResolveControllers resolves effective control over one company
func (e *Engine) ResolveControllers(companyID string) ([]resolve.Resolution, error) {
	return e.resolver.Resolve(companyID)
}

// ResolveAll resolves every company in the graph
func (e *Engine) ResolveAll(ctx context.Context) ([]resolve.CompanyResolutions, error) {
	return e.resolver.ResolveAll(ctx)
}

// FindCycles reports every distinct ownership loop
func (e *Engine) FindCycles() []detect.CircularOwnership {
	start := time.Now()
	findings := detect.FindCycles(e.graph)
	e.recordFindings("cycles", detect.KindCircularOwnership, len(findings), time.Since(start))
	return findings
}

// FindDeepChains reports companies whose longest control chain exceeds
// the configured threshold
func (e *Engine) FindDeepChains() []detect.DeepChain {
	start := time.Now()
	findings := detect.FindDeepChains(e.graph, e.cfg.DeepChainThreshold)
	e.recordFindings("depth", detect.KindDeepChain, len(findings), time.Since(start))
	return findings
}

// FindRegistrationOutliers reports addresses with anomalous company counts
func (e *Engine) FindRegistrationOutliers() []detect.RegistrationDensityOutlier {
	start := time.Now()
	findings := detect.FindRegistrationOutliers(e.graph, e.cfg.DensityZThreshold)
	e.recordFindings("density", detect.KindRegistrationDensity, len(findings), time.Since(start))
	return findings
}

// FindOffshoreNexus reports concentration of control from high-secrecy
// jurisdictions into UK-registered companies
func (e *Engine) FindOffshoreNexus() []detect.OffshoreNexus {
	start := time.Now()
	findings := detect.FindOffshoreNexus(e.graph, e.cfg.SecrecyJurisdictions)
	e.recordFindings("offshore", detect.KindOffshoreNexus, len(findings), time.Since(start))
	return findings
}

// FindBridges reports single-intermediary indirect control structures
func (e *Engine) FindBridges() []detect.BridgeControl {
	start := time.Now()
	findings := detect.FindBridges(e.graph)
	e.recordFindings("bridges", detect.KindBridgeControl, len(findings), time.Since(start))
	return findings
}

// Run executes a full analysis pass: every company resolved, every
// detector run, warnings collected. Fails only on context cancellation.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	log := e.log.With(logging.RunID(report.RunID))

	stats := e.graph.GetStatistics()
	report.NodeCount = stats.NodeCount
	report.EdgeCount = stats.EdgeCount
	report.CompanyCount = stats.CompanyCount
	report.Warnings = append(report.Warnings, e.loadWarnings...)

	log.Info("analysis started",
		logging.Int("nodes", stats.NodeCount),
		logging.Int("edges", stats.EdgeCount),
		logging.Int("companies", stats.CompanyCount),
	)

	resolutions, err := e.resolver.ResolveAll(ctx)
	if err != nil {
		return nil, err
	}
	report.Resolutions = resolutions
	for _, cr := range resolutions {
		for _, res := range cr.Resolutions {
			if res.Partial {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("resolution: traversal budget exhausted for company %s", cr.CompanyID))
				break
			}
		}
	}

	report.Cycles = e.FindCycles()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.DeepChains = e.FindDeepChains()
	report.DensityOutliers = e.FindRegistrationOutliers()
	report.OffshoreNexus = e.FindOffshoreNexus()
	report.Bridges = e.FindBridges()

	report.CompletedAt = time.Now()
	log.Info("analysis completed",
		logging.Int("findings", report.FindingCount()),
		logging.Int("warnings", len(report.Warnings)),
		logging.Latency(report.CompletedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func (e *Engine) recordFindings(detector string, kind detect.FindingKind, count int, duration time.Duration) {
	e.log.Debug("detector pass",
		logging.Component(detector),
		logging.Count(count),
		logging.Latency(duration),
	)
	if e.metrics != nil {
		e.metrics.RecordFindings(detector, string(kind), count, duration)
	}
}
