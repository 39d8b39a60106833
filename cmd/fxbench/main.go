package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"holo-fx/internal/bench"
	_ "holo-fx/internal/fx/particles"
	_ "holo-fx/internal/fx/wavegrid"
	"holo-fx/internal/profile"
)

func main() {
	seconds := flag.Float64("seconds", 4, "virtual seconds to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	widths := flag.String("widths", "480,767,768,1023,1024,1920", "comma-separated viewport widths")
	height := flag.Int("height", 720, "viewport height")
	layers := flag.String("layers", "wavegrid,particles", "comma-separated layers")
	seed := flag.Int64("seed", 42, "layer seed")
	flag.Parse()

	ws, err := parseWidths(*widths)
	if err != nil {
		log.Fatal(err)
	}
	hints := []profile.Capability{profile.CapabilityNormal, profile.CapabilityReduced, profile.CapabilityMinimal}
	scenarios := bench.Grid(ws, *height, hints, bench.Scenario{
		Layers: strings.Split(*layers, ","),
		Seed:   *seed,
		Ticks:  int(*seconds * bench.TickRate),
	})

	fmt.Printf("Running %d scenarios (%d workers, %.1fs at %d Hz)\n", len(scenarios), *workers, *seconds, bench.TickRate)

	start := time.Now()
	results := bench.Sweep(scenarios, *workers)
	elapsed := time.Since(start)

	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%-28s error: %v\n", res.Scenario, res.Err)
			continue
		}
		fmt.Printf("%-28s tier=%s\n", res.Scenario, res.Tier)
		for _, l := range res.Layers {
			fmt.Printf("    %-10s %-8s frames=%d full=%d ops/frame=%.1f maxLinks=%d\n",
				l.Name, l.State, l.Accepted, l.FullRedraws, l.OpsPerFrame(), l.MaxLinks)
			if l.Err != nil {
				fmt.Printf("    %-10s error: %v\n", "", l.Err)
			}
		}
	}
	fmt.Printf("\nDone in %s\n", elapsed.Round(time.Millisecond))
}

func parseWidths(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("width %q: %w", part, err)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no widths given")
	}
	return out, nil
}
