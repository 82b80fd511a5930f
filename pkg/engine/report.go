package engine

import (
	"time"

	"github.com/dd0wney/cluso-ubo/pkg/detect"
	"github.com/dd0wney/cluso-ubo/pkg/resolve"
)

// Report is the complete output of one analysis run: resolved control,
// pattern findings, and the data-quality warnings accumulated along the
// way. Warnings never fail a run; they are the side channel compliance
// users read alongside the results.
type Report struct {
	RunID       string        `json:"run_id"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`

	NodeCount    int `json:"node_count"`
	EdgeCount    int `json:"edge_count"`
	CompanyCount int `json:"company_count"`

	Resolutions []resolve.CompanyResolutions `json:"resolutions"`

	Cycles          []detect.CircularOwnership          `json:"cycles,omitempty"`
	DeepChains      []detect.DeepChain                  `json:"deep_chains,omitempty"`
	DensityOutliers []detect.RegistrationDensityOutlier `json:"density_outliers,omitempty"`
	OffshoreNexus   []detect.OffshoreNexus              `json:"offshore_nexus,omitempty"`
	Bridges         []detect.BridgeControl              `json:"bridges,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// FindingCount returns the total number of pattern findings in the report
func (r *Report) FindingCount() int {
	return len(r.Cycles) + len(r.DeepChains) + len(r.DensityOutliers) +
		len(r.OffshoreNexus) + len(r.Bridges)
}
