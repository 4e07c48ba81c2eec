package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/rowflux/rowflux"
	"github.com/rowflux/rowflux/service/bench"
	"github.com/rowflux/rowflux/tracing"
)

func main() {
	configURL := flag.String("config", "", "YAML configuration URL")
	output := flag.String("output", "", "report destination URL (overrides config)")
	sizes := flag.String("sizes", "", "comma separated matrix sizes (overrides config)")
	workers := flag.String("workers", "", "comma separated pool sizes (overrides config)")
	repeats := flag.Int("repeats", 0, "timed runs per cell (overrides config)")
	flag.Parse()

	ctx := context.Background()
	config := rowflux.DefaultConfig()
	if *configURL != "" {
		loaded, err := rowflux.LoadConfig(ctx, *configURL)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		config = loaded
	}
	if *output != "" {
		config.Output.URL = *output
	}
	if *sizes != "" {
		values, err := parseInts(*sizes)
		if err != nil {
			log.Fatalf("invalid -sizes: %v", err)
		}
		config.Bench.Sizes = values
	}
	if *workers != "" {
		values, err := parseInts(*workers)
		if err != nil {
			log.Fatalf("invalid -workers: %v", err)
		}
		config.Bench.Workers = values
	}
	if *repeats > 0 {
		config.Bench.Repeats = *repeats
	}

	if config.Trace.Enabled {
		if err := tracing.Init("rowflux", "0.1.0", config.Trace.Output); err != nil {
			log.Fatalf("failed to initialise tracing: %v", err)
		}
	}

	service, err := rowflux.New(
		rowflux.WithConfig(config),
		rowflux.WithProgressListener(func(p bench.Progress) {
			log.Printf("size=%d workers=%d run %d/%d took %s", p.Size, p.Workers, p.Run, p.TotalRuns, p.Elapsed)
		}),
	)
	if err != nil {
		log.Fatalf("failed to initialise: %v", err)
	}

	suite, err := service.Runtime().Run(ctx)
	if err != nil {
		log.Fatalf("benchmark failed: %v", err)
	}

	for _, size := range suite.Sizes() {
		fmt.Printf("matrix size %d\n", size)
		for _, cell := range suite.BySize(size) {
			fmt.Printf("  %3d threads  mean %8.3f ms  (min %.3f, max %.3f)\n",
				cell.Workers,
				float64(cell.Mean.Microseconds())/1000,
				float64(cell.Min.Microseconds())/1000,
				float64(cell.Max.Microseconds())/1000)
		}
	}
	fmt.Printf("report written to %v\n", config.Output.URL)
}

func parseInts(csv string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(csv, ",") {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
