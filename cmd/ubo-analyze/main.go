// ubo-analyze runs a full ownership analysis over a small built-in
// dataset and prints the findings. It exists to demonstrate the engine
// wiring end to end; real deployments feed records in through the
// graph.Store interface instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dd0wney/cluso-ubo/pkg/engine"
	"github.com/dd0wney/cluso-ubo/pkg/export"
	"github.com/dd0wney/cluso-ubo/pkg/graph"
	"github.com/dd0wney/cluso-ubo/pkg/graph/pgstore"
	"github.com/dd0wney/cluso-ubo/pkg/identity"
	"github.com/dd0wney/cluso-ubo/pkg/logging"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config (optional)")
	outFile := flag.String("out", "", "Write the report snapshot to this path")
	compress := flag.Bool("compress", false, "Snappy-compress the snapshot")
	databaseURL := flag.String("db", "", "PostgreSQL URL; round-trips records through the database")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := engine.DefaultConfig()
	if *configFile != "" {
		loaded, err := engine.LoadConfig(*configFile)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx := context.Background()
	nodes, edges := demoRecords()

	var (
		g      *graph.OwnershipGraph
		report *graph.LoadReport
	)
	if *databaseURL != "" {
		logger.Info("persisting records", "database", "postgres")
		store, err := pgstore.New(ctx, *databaseURL)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.SaveNodes(ctx, nodes); err != nil {
			logger.Error("failed to save nodes", "error", err)
			os.Exit(1)
		}
		if err := store.SaveEdges(ctx, edges); err != nil {
			logger.Error("failed to save edges", "error", err)
			os.Exit(1)
		}
		g, report, err = graph.BuildFromStore(ctx, store)
		if err != nil {
			logger.Error("failed to rebuild graph", "error", err)
			os.Exit(1)
		}
	} else {
		g, report = graph.Load(nodes, edges)
	}

	logger.Info("graph loaded",
		"nodes", report.NodesLoaded,
		"edges", report.EdgesLoaded,
		"excluded", report.EdgesExcluded,
		"unparsed", report.Unparsed,
	)

	eng, err := engine.New(g, cfg, logging.NewDefaultLogger())
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	eng.WithLoadReport(report)

	result, err := eng.Run(ctx)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("analysis complete",
		"run_id", result.RunID,
		"companies", result.CompanyCount,
		"findings", result.FindingCount(),
		"warnings", len(result.Warnings),
	)

	printSummary(result)

	if *outFile != "" {
		exporter := export.NewExporter(logging.NewDefaultLogger(), *compress)
		if err := exporter.WriteFile(*outFile, result); err != nil {
			logger.Error("failed to write snapshot", "error", err)
			os.Exit(1)
		}
		logger.Info("snapshot written", "path", *outFile, "compressed", *compress)
	}
}

func printSummary(r *engine.Report) {
	fmt.Printf("\n=== Ownership Analysis %s ===\n\n", r.RunID)

	for _, cr := range r.Resolutions {
		if len(cr.Resolutions) == 0 {
			continue
		}
		fmt.Printf("%s\n", cr.CompanyID)
		for _, res := range cr.Resolutions {
			fmt.Printf("  %-46s [%5.1f, %5.1f]  %s\n",
				res.ControllerID, res.Range.Min, res.Range.Max, res.Confidence)
		}
	}

	if len(r.Cycles) > 0 {
		fmt.Printf("\nCircular ownership:\n")
		for _, c := range r.Cycles {
			fmt.Printf("  %v\n", c.Cycle)
		}
	}
	if len(r.DeepChains) > 0 {
		fmt.Printf("\nDeep chains:\n")
		for _, d := range r.DeepChains {
			fmt.Printf("  %s depth=%d\n", d.CompanyID, d.Depth)
		}
	}
	if len(r.DensityOutliers) > 0 {
		fmt.Printf("\nRegistration-density outliers:\n")
		for _, o := range r.DensityOutliers {
			fmt.Printf("  %s companies=%d z=%.2f\n", o.AddressID, o.CompanyCount, o.ZScore)
		}
	}
	if len(r.OffshoreNexus) > 0 {
		fmt.Printf("\nOffshore nexus:\n")
		for _, n := range r.OffshoreNexus {
			fmt.Printf("  %s companies=%d concentration=%.2f\n",
				n.Jurisdiction, n.CompanyCount, n.ConcentrationRatio)
		}
	}
	if len(r.Bridges) > 0 {
		fmt.Printf("\nBridge structures:\n")
		for _, b := range r.Bridges {
			fmt.Printf("  %s -> %s -> %s [%5.1f, %5.1f]\n",
				b.ControllerID, b.BridgeOrgID, b.CompanyID, b.Combined.Min, b.Combined.Max)
		}
	}
	fmt.Println()
}

// demoRecords builds a small dataset covering the interesting structures:
// direct and layered control, offshore controllers, a loop, and a shared
// registered address. Person and address IDs come from pkg/identity, the
// same derivation upstream ingestion uses.
func demoRecords() ([]graph.Node, []graph.EdgeRecord) {
	smithID := identity.PersonID(identity.PersonKey{
		FullName: "Jonathan Smith", DateOfBirth: "1971-03", Nationality: "British",
	})
	volkovID := identity.PersonID(identity.PersonKey{
		FullName: "Mikhail Volkov", DateOfBirth: "1965-11", Nationality: "Russian",
	})
	chenID := identity.PersonID(identity.PersonKey{
		FullName: "Wei Chen", DateOfBirth: "1980-07", Nationality: "Chinese",
	})
	sharedAddr := identity.AddressID("Suite 12, 90 Main Street, Road Town, Tortola")
	londonAddr := identity.AddressID("1 Poultry, London EC2R 8EJ")

	nodes := []graph.Node{
		{ID: smithID, Kind: graph.KindPerson, Name: "Jonathan Smith",
			Person: &graph.PersonAttrs{DateOfBirth: "1971-03", Nationality: "British", CountryCode: "GB"}},
		{ID: volkovID, Kind: graph.KindPerson, Name: "Mikhail Volkov",
			Person: &graph.PersonAttrs{DateOfBirth: "1965-11", Nationality: "Russian", CountryCode: "VG"}},
		{ID: chenID, Kind: graph.KindPerson, Name: "Wei Chen",
			Person: &graph.PersonAttrs{DateOfBirth: "1980-07", Nationality: "Chinese", CountryCode: "KY"}},

		{ID: sharedAddr, Kind: graph.KindAddress, Name: "Suite 12, 90 Main Street",
			Address: &graph.AddressAttrs{Raw: "Suite 12, 90 Main Street, Road Town, Tortola"}},
		{ID: londonAddr, Kind: graph.KindAddress, Name: "1 Poultry",
			Address: &graph.AddressAttrs{Raw: "1 Poultry, London EC2R 8EJ"}},

		{ID: "C_10537861", Kind: graph.KindCompany, Name: "Thames Imports Ltd",
			Company: &graph.CompanyAttrs{RegistrationNumber: "10537861", Jurisdiction: "GB", RegisteredAddressID: londonAddr}},
		{ID: "C_10893412", Kind: graph.KindCompany, Name: "Alder Property Ltd",
			Company: &graph.CompanyAttrs{RegistrationNumber: "10893412", Jurisdiction: "GB", RegisteredAddressID: londonAddr}},
		{ID: "C_bvi_2201", Kind: graph.KindCompany, Name: "Sunrise Ventures Inc",
			Company: &graph.CompanyAttrs{RegistrationNumber: "2201", Jurisdiction: "VG", RegisteredAddressID: sharedAddr}},

		{ID: "O_holdco", Kind: graph.KindOrganization, Name: "Alder Holdings BV",
			Organization: &graph.OrganizationAttrs{Jurisdiction: "NL"}},
		{ID: "O_cy1", Kind: graph.KindOrganization, Name: "Kypros Nominees",
			Organization: &graph.OrganizationAttrs{Jurisdiction: "CY"}},
		{ID: "O_cy2", Kind: graph.KindOrganization, Name: "Limassol Trustees",
			Organization: &graph.OrganizationAttrs{Jurisdiction: "CY"}},
	}

	edges := []graph.EdgeRecord{
		{ControllerID: smithID, CompanyID: "C_10537861", Descriptor: "ownership-of-shares-50-to-75-percent"},
		{ControllerID: volkovID, CompanyID: "C_10537861", Descriptor: "voting-rights-25-to-50-percent"},

		// layered: Chen -> holdco -> Alder Property
		{ControllerID: chenID, CompanyID: "O_holdco", Descriptor: "ownership-of-shares-exact-100"},
		{ControllerID: "O_holdco", CompanyID: "C_10893412", Descriptor: "ownership-of-shares-over-75-percent"},

		// loop between the two Cypriot nominees
		{ControllerID: "O_cy1", CompanyID: "O_cy2", Descriptor: "ownership-of-shares-exact-50"},
		{ControllerID: "O_cy2", CompanyID: "O_cy1", Descriptor: "ownership-of-shares-exact-50"},

		// a descriptor the normalizer cannot parse degrades, not fails
		{ControllerID: volkovID, CompanyID: "C_bvi_2201", Descriptor: "right-to-appoint-majority-of-board"},
	}
	return nodes, edges
}
