package detect

import (
	"math"
	"sort"

	"github.com/dd0wney/cluso-ubo/pkg/graph"
)

// FindRegistrationOutliers groups companies by registered address and
// flags addresses whose company count sits beyond zThreshold standard
// deviations above the cross-address mean. A zero-variance population
// yields no findings. Results are ordered by descending z-score.
func FindRegistrationOutliers(g *graph.OwnershipGraph, zThreshold float64) []RegistrationDensityOutlier {
	counts := make(map[string]int)
	g.Nodes(func(n *graph.Node) bool {
		if n.Kind == graph.KindCompany && n.Company != nil && n.Company.RegisteredAddressID != "" {
			counts[n.Company.RegisteredAddressID]++
		}
		return true
	})
	if len(counts) == 0 {
		return nil
	}

	mean := 0.0
	for _, c := range counts {
		mean += float64(c)
	}
	mean /= float64(len(counts))

	variance := 0.0
	for _, c := range counts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(len(counts))
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return nil
	}

	findings := make([]RegistrationDensityOutlier, 0)
	for addressID, count := range counts {
		z := (float64(count) - mean) / stddev
		if z > zThreshold {
			findings = append(findings, RegistrationDensityOutlier{
				AddressID:    addressID,
				CompanyCount: count,
				ZScore:       z,
			})
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].ZScore != findings[j].ZScore {
			return findings[i].ZScore > findings[j].ZScore
		}
		return findings[i].AddressID < findings[j].AddressID
	})
	return findings
}

// FindOffshoreNexus measures control value flowing from each high-secrecy
// jurisdiction into UK-registered companies. Control value is the range
// midpoint of each inbound edge; the concentration ratio divides a
// jurisdiction's value by the total inbound control value of all UK
// targets. Results are ranked by descending ratio.
func FindOffshoreNexus(g *graph.OwnershipGraph, secrecyJurisdictions []string) []OffshoreNexus {
	secret := make(map[string]bool, len(secrecyJurisdictions))
	for _, j := range secrecyJurisdictions {
		secret[j] = true
	}

	type accumulator struct {
		value     float64
		companies map[string]bool
	}
	byJurisdiction := make(map[string]*accumulator)
	totalValue := 0.0

	for _, companyID := range g.Companies() {
		node, err := g.Node(companyID)
		if err != nil || node.Company == nil || node.Company.Jurisdiction != "GB" {
			continue
		}
		for _, e := range g.IncomingEdges(companyID) {
			controller, err := g.Node(e.ControllerID)
			if err != nil {
				continue
			}
			value := e.Range.Midpoint()
			totalValue += value

			jurisdiction := controller.Jurisdiction()
			if !secret[jurisdiction] {
				continue
			}
			acc, ok := byJurisdiction[jurisdiction]
			if !ok {
				acc = &accumulator{companies: make(map[string]bool)}
				byJurisdiction[jurisdiction] = acc
			}
			acc.value += value
			acc.companies[companyID] = true
		}
	}
	if totalValue == 0 {
		return nil
	}

	findings := make([]OffshoreNexus, 0, len(byJurisdiction))
	for jurisdiction, acc := range byJurisdiction {
		findings = append(findings, OffshoreNexus{
			Jurisdiction:       jurisdiction,
			CompanyCount:       len(acc.companies),
			ConcentrationRatio: acc.value / totalValue,
		})
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].ConcentrationRatio != findings[j].ConcentrationRatio {
			return findings[i].ConcentrationRatio > findings[j].ConcentrationRatio
		}
		return findings[i].Jurisdiction < findings[j].Jurisdiction
	})
	return findings
}

// FindBridges emits a finding for every (controller, organization, target)
// triple where the controller reaches the target only through that single
// intermediary organization: a two-hop path with no direct edge. The
// combined range composes the two hops.
func FindBridges(g *graph.OwnershipGraph) []BridgeControl {
	findings := make([]BridgeControl, 0)

	g.Nodes(func(controller *graph.Node) bool {
		if !controller.IsController() {
			return true
		}
		for _, first := range g.OutgoingEdges(controller.ID) {
			bridge, err := g.Node(first.CompanyID)
			if err != nil || bridge.Kind != graph.KindOrganization {
				continue
			}
			for _, second := range g.OutgoingEdges(bridge.ID) {
				target, err := g.Node(second.CompanyID)
				if err != nil || target.Kind != graph.KindCompany {
					continue
				}
				if second.CompanyID == controller.ID || g.HasEdge(controller.ID, second.CompanyID) {
					continue
				}
				findings = append(findings, BridgeControl{
					ControllerID: controller.ID,
					BridgeOrgID:  bridge.ID,
					CompanyID:    second.CompanyID,
					Combined:     first.Range.Compose(second.Range),
				})
			}
		}
		return true
	})

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].ControllerID != findings[j].ControllerID {
			return findings[i].ControllerID < findings[j].ControllerID
		}
		if findings[i].CompanyID != findings[j].CompanyID {
			return findings[i].CompanyID < findings[j].CompanyID
		}
		return findings[i].BridgeOrgID < findings[j].BridgeOrgID
	})
	return findings
}
