// Package resolve computes effective multi-hop control over the ownership
// graph. For each target company it enumerates every backward control path
// to an ultimate controller, composes per-edge control ranges
// multiplicatively along each path, and merges independent paths per
// controller by summation capped at 100.
package resolve

import (
	"context"
	"sort"
	"time"

	"github.com/dd0wney/cluso-ubo/pkg/control"
	"github.com/dd0wney/cluso-ubo/pkg/graph"
	"github.com/dd0wney/cluso-ubo/pkg/logging"
	"github.com/dd0wney/cluso-ubo/pkg/metrics"
	"github.com/dd0wney/cluso-ubo/pkg/parallel"
)

// Confidence classifies how a resolution was derived
type Confidence uint8

const (
	// ConfidenceExact means a single direct edge produced the result
	ConfidenceExact Confidence = iota
	// ConfidenceAggregated means the result was derived across hops or
	// merged from multiple paths
	ConfidenceAggregated
	// ConfidenceUncertain means at least one contributing edge used the
	// fallback range, kinds were mixed along a path, or the traversal
	// budget ran out before the company's paths were fully enumerated
	ConfidenceUncertain
)

// String returns the string representation of a confidence level
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceAggregated:
		return "aggregated"
	default:
		return "uncertain"
	}
}

// Path is one control chain from an ultimate controller down to the
// target company. Nodes are ordered controller-first; Range is the
// multiplicative composition of the chain's edge ranges.
type Path struct {
	Nodes []string
	Range control.Range
	Mixed bool // edges of differing kinds were composed
}

// Depth returns the hop count of the path
func (p Path) Depth() int {
	return len(p.Nodes) - 1
}

// Resolution is the best-known aggregate for one (controller, target)
// pair: the merged control range, the paths that produced it, and the
// confidence classification.
type Resolution struct {
	ControllerID string
	CompanyID    string
	Range        control.Range
	Paths        []Path
	Confidence   Confidence
	Partial      bool // traversal budget exhausted before full enumeration
}

// Config bounds the resolver's traversals
type Config struct {
	// MaxDepth bounds path length in hops. The default balances
	// completeness against combinatorial blow-up on dense graphs.
	MaxDepth int
	// VisitBudget caps edge expansions per company so one adversarial
	// sub-graph cannot stall the run. On exhaustion the company's
	// results are marked partial and uncertain, never failed.
	VisitBudget int
	// Workers sizes the fan-out pool for ResolveAll
	Workers int
}

// DefaultConfig returns the standard traversal bounds
func DefaultConfig() Config {
	return Config{
		MaxDepth:    10,
		VisitBudget: 100000,
		Workers:     0, // pool defaults to GOMAXPROCS
	}
}

// Resolver enumerates control paths over an immutable graph
type Resolver struct {
	graph   *graph.OwnershipGraph
	cfg     Config
	log     logging.Logger
	metrics *metrics.Registry
}

// NewResolver creates a resolver over the given graph
func NewResolver(g *graph.OwnershipGraph, cfg Config, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.VisitBudget <= 0 {
		cfg.VisitBudget = DefaultConfig().VisitBudget
	}
	return &Resolver{graph: g, cfg: cfg, log: log}
}

// WithMetrics instruments the resolver with the given registry
func (r *Resolver) WithMetrics(m *metrics.Registry) *Resolver {
	r.metrics = m
	return r
}

// Resolve returns the resolutions for one target company, one per
// ultimate controller, ordered by descending range midpoint then
// controller ID.
func (r *Resolver) Resolve(companyID string) ([]Resolution, error) {
	node, err := r.graph.Node(companyID)
	if err != nil {
		return nil, err
	}
	if node.Kind != graph.KindCompany {
		return nil, &graph.GraphError{Op: "Resolve", Entity: "node", ID: companyID, Cause: graph.ErrNotACompany}
	}

	start := time.Now()
	paths, visits, partial := r.enumerate(companyID)
	resolutions := mergePaths(companyID, paths, partial)

	if partial {
		r.log.Warn("traversal budget exhausted",
			logging.CompanyID(companyID),
			logging.Int("budget", r.cfg.VisitBudget),
		)
	}
	if r.metrics != nil {
		r.metrics.RecordResolutionPass(visits, partial, time.Since(start))
		for _, res := range resolutions {
			depths := make([]int, len(res.Paths))
			for i, p := range res.Paths {
				depths[i] = p.Depth()
			}
			r.metrics.RecordResolution(res.Confidence.String(), depths)
		}
	}
	return resolutions, nil
}

// CompanyResolutions pairs a company with its resolutions for bulk output
type CompanyResolutions struct {
	CompanyID   string
	Resolutions []Resolution
}

// ResolveAll resolves every company in the graph, fanning companies across
// the worker pool. Output order follows the graph's sorted company list
// regardless of scheduling.
func (r *Resolver) ResolveAll(ctx context.Context) ([]CompanyResolutions, error) {
	companies := r.graph.Companies()
	results := make([]CompanyResolutions, len(companies))

	pool := parallel.NewWorkerPool(r.cfg.Workers)
	defer pool.Close()

	err := parallel.ForEach(ctx, pool, len(companies), func(i int) {
		id := companies[i]
		resolutions, rerr := r.Resolve(id)
		if rerr != nil {
			// Companies() only yields company nodes, so this is unreachable
			// short of graph corruption; surface it in the log either way.
			r.log.Error("resolution failed", logging.CompanyID(id), logging.Error(rerr))
		}
		results[i] = CompanyResolutions{CompanyID: id, Resolutions: resolutions}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// mergePaths folds enumerated paths into one Resolution per controller.
// Contributions of distinct paths to the same controller sum and cap at
// 100: control via independent channels accumulates.
func mergePaths(companyID string, paths []Path, partial bool) []Resolution {
	byController := make(map[string]*Resolution)
	order := make([]string, 0)

	for _, p := range paths {
		controller := p.Nodes[0]
		res, ok := byController[controller]
		if !ok {
			res = &Resolution{
				ControllerID: controller,
				CompanyID:    companyID,
				Range:        p.Range,
				Paths:        []Path{p},
				Partial:      partial,
			}
			byController[controller] = res
			order = append(order, controller)
			continue
		}
		res.Range = res.Range.Add(p.Range)
		res.Paths = append(res.Paths, p)
	}

	resolutions := make([]Resolution, 0, len(order))
	for _, controller := range order {
		res := byController[controller]
		res.Confidence = classify(res)
		resolutions = append(resolutions, *res)
	}

	sort.SliceStable(resolutions, func(i, j int) bool {
		mi, mj := resolutions[i].Range.Midpoint(), resolutions[j].Range.Midpoint()
		if mi != mj {
			return mi > mj
		}
		return resolutions[i].ControllerID < resolutions[j].ControllerID
	})
	return resolutions
}

func classify(res *Resolution) Confidence {
	if res.Partial || res.Range.Unparsed {
		return ConfidenceUncertain
	}
	for _, p := range res.Paths {
		if p.Mixed || p.Range.Unparsed {
			return ConfidenceUncertain
		}
	}
	if len(res.Paths) == 1 && res.Paths[0].Depth() == 1 {
		return ConfidenceExact
	}
	return ConfidenceAggregated
}
