package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/wbrown/janus-dcs/dcs/geobase"
	"github.com/wbrown/janus-dcs/dcs/world"
)

func main() {
	geobasePath := flag.String("geobase", "geobase", "gazetteer facts file")
	outputPath := flag.String("out", "world.db", "world database directory")
	threshold := flag.Int64("major", geobase.DefaultMajorThreshold, "population above which a city is major")
	flag.Parse()

	fmt.Printf("Building world database: %s\n", *outputPath)
	fmt.Printf("  Geobase: %s\n", *geobasePath)
	fmt.Printf("  Major threshold: %s\n", humanize.Comma(*threshold))
	fmt.Println()

	src, stats, err := geobase.LoadFile(*geobasePath, geobase.Options{MajorThreshold: *threshold})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load geobase: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Facts: %s (%s skipped)\n", humanize.Comma(int64(stats.Facts)), humanize.Comma(int64(stats.Skipped)))
	fmt.Printf("  States: %d\n", stats.States)
	fmt.Printf("  Cities: %s (%d major)\n", humanize.Comma(int64(stats.Cities)), stats.Major)
	fmt.Printf("  Borders: %d\n", stats.Borders)

	db, err := world.OpenBadger(*outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Import(src); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to import world: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Done! %d predicates stored. Use this database with:\n", len(db.Names()))
	fmt.Printf("   dcs -db %s\n", *outputPath)
}
