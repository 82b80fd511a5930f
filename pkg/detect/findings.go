// Package detect finds adversarial structuring patterns over the
// ownership graph: circular ownership, deep "Russian doll" chains,
// registration-factory addresses, offshore control concentration, and
// single-intermediary bridge structures. Every detector is a read-only
// query over the immutable graph, so detectors run independently and in
// any order, including concurrently.
package detect

import (
	"github.com/dd0wney/cluso-ubo/pkg/control"
)

// FindingKind tags the pattern-finding union
type FindingKind string

const (
	KindCircularOwnership   FindingKind = "circular_ownership"
	KindDeepChain           FindingKind = "deep_chain"
	KindRegistrationDensity FindingKind = "registration_density_outlier"
	KindOffshoreNexus       FindingKind = "offshore_nexus"
	KindBridgeControl       FindingKind = "bridge_control"
)

// Finding is implemented by every pattern-finding type
type Finding interface {
	FindingKind() FindingKind
}

// CircularOwnership is a closed ownership loop, normalized to start at its
// lexicographically smallest node ID so the same loop is reported once no
// matter where traversal entered it.
type CircularOwnership struct {
	Cycle []string `json:"cycle"`
}

func (CircularOwnership) FindingKind() FindingKind { return KindCircularOwnership }

// DeepChain flags a company whose longest backward control chain exceeds
// the configured depth threshold. Chain is ordered ultimate-controller
// first, company last.
type DeepChain struct {
	CompanyID string   `json:"company_id"`
	Depth     int      `json:"depth"`
	Chain     []string `json:"chain"`
}

func (DeepChain) FindingKind() FindingKind { return KindDeepChain }

// RegistrationDensityOutlier flags an address hosting anomalously many
// registered companies relative to the cross-address distribution. The
// z-score, not an absolute count, is the statistic: business-district
// baselines vary too much for a fixed cutoff.
type RegistrationDensityOutlier struct {
	AddressID    string  `json:"address_id"`
	CompanyCount int     `json:"company_count"`
	ZScore       float64 `json:"z_score"`
}

func (RegistrationDensityOutlier) FindingKind() FindingKind { return KindRegistrationDensity }

// OffshoreNexus measures the concentration of control flowing from one
// high-secrecy jurisdiction into UK-registered companies.
type OffshoreNexus struct {
	Jurisdiction       string  `json:"jurisdiction"`
	CompanyCount       int     `json:"company_count"`
	ConcentrationRatio float64 `json:"concentration_ratio"`
}

func (OffshoreNexus) FindingKind() FindingKind { return KindOffshoreNexus }

// BridgeControl is indirect control of a target through exactly one
// intermediary organization and no direct edge: a standard compliance
// interest surfaced separately from general multi-hop resolution.
type BridgeControl struct {
	ControllerID string        `json:"controller_id"`
	BridgeOrgID  string        `json:"bridge_org_id"`
	CompanyID    string        `json:"company_id"`
	Combined     control.Range `json:"combined_range"`
}

func (BridgeControl) FindingKind() FindingKind { return KindBridgeControl }
