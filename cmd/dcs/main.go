package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/wbrown/janus-dcs/dcs/annotations"
	"github.com/wbrown/janus-dcs/dcs/config"
	"github.com/wbrown/janus-dcs/dcs/format"
	"github.com/wbrown/janus-dcs/dcs/geobase"
	"github.com/wbrown/janus-dcs/dcs/scenario"
	"github.com/wbrown/janus-dcs/dcs/tree"
	"github.com/wbrown/janus-dcs/dcs/world"
)

func main() {
	var geobasePath string
	var dbPath string
	var configPath string
	var verbose bool
	var showFormula bool
	var scenarioName string
	var help bool

	flag.StringVar(&geobasePath, "geobase", "", "gazetteer facts file (overrides config)")
	flag.StringVar(&dbPath, "db", "", "world database built by build-worlddb (overrides -geobase)")
	flag.StringVar(&configPath, "config", "dcs.yaml", "configuration file")
	flag.BoolVar(&verbose, "verbose", false, "verbose mode (show grounding annotations)")
	flag.BoolVar(&showFormula, "formula", true, "print the lambda formula of each tree")
	flag.StringVar(&scenarioName, "scenario", "all", "scenario to run, or 'all'")
	flag.BoolVar(&help, "h", false, "show help")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Grounds hand-built DCS trees against a geography world.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScenarios:\n")
		for _, s := range scenario.All() {
			fmt.Fprintf(os.Stderr, "  %-24s %s\n", s.Name, s.Question)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -geobase geobase                 # Run every scenario\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db world.db -scenario major-ca  # Use a prebuilt world\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -verbose -scenario largest-city  # Show grounding annotations\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if geobasePath != "" {
		cfg.World.Geobase = geobasePath
	}
	if dbPath != "" {
		cfg.World.BadgerPath = dbPath
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	switch cfg.Output.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	w, closeWorld, err := openWorld(cfg)
	if err != nil {
		log.Fatalf("Failed to open world: %v", err)
	}
	defer closeWorld()

	handler, syncLog := newHandler(cfg)
	defer syncLog()

	var selected []scenario.Scenario
	if scenarioName == "all" {
		selected = scenario.All()
	} else {
		s, err := scenario.Lookup(scenarioName)
		if err != nil {
			log.Fatal(err)
		}
		selected = []scenario.Scenario{s}
	}

	failed := false
	for _, s := range selected {
		if err := run(w, handler, s, showFormula, cfg.Output.Format); err != nil {
			fmt.Printf("Grounding error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// openWorld prefers a world database over the gazetteer file
func openWorld(cfg *config.Config) (world.World, func(), error) {
	if cfg.World.BadgerPath != "" {
		if _, err := os.Stat(cfg.World.BadgerPath); os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("world database does not exist: %s", cfg.World.BadgerPath)
		}
		bw, err := world.OpenBadgerReadOnly(cfg.World.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return bw, func() { bw.Close() }, nil
	}

	m, stats, err := geobase.LoadFile(cfg.World.Geobase, geobase.Options{
		MajorThreshold: cfg.World.MajorThreshold,
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Loaded %s: %d states, %d cities (%d major), %d borders\n",
			cfg.World.Geobase, stats.States, stats.Cities, stats.Major, stats.Borders)
	}
	return m, func() {}, nil
}

// newHandler picks the annotation sink for verbose runs
func newHandler(cfg *config.Config) (annotations.Handler, func()) {
	if !cfg.Output.Verbose {
		return nil, func() {}
	}
	if cfg.Output.Format == "zap" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		return annotations.ZapHandler(logger), func() { _ = logger.Sync() }
	}
	formatter := annotations.NewOutputFormatter(os.Stderr)
	return annotations.Handler(formatter.Handle), func() {}
}

func run(w world.World, handler annotations.Handler, s scenario.Scenario, showFormula bool, outputFormat string) error {
	root := s.Build()

	fmt.Printf("\n=== %s ===\n", s.Name)
	fmt.Printf("Question: %s\n", s.Question)
	fmt.Printf("Tree: %s\n", root)
	if showFormula {
		fmt.Printf("Formula: %s\n", root.Formula())
	}

	g := tree.NewGrounder(w, tree.GroundOptions{
		Handler:           handler,
		EnableAnnotations: handler != nil,
	})
	d, err := g.Ground(root)
	if err != nil {
		return err
	}

	if outputFormat == "plain" {
		var rows []string
		for _, t := range d.Sorted() {
			rows = append(rows, t.String())
		}
		fmt.Printf("Denotation: {%s}\n", strings.Join(rows, ", "))
		return nil
	}
	fmt.Println()
	fmt.Println(format.DenotationString(d))
	return nil
}
