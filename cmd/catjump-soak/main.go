// Command catjump-soak runs the game headless for a fixed number of frames,
// jumping and losing the device on a schedule, and prints a report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	var cfg soakConfig
	flag.IntVar(&cfg.Frames, "frames", 3600, "Number of ticks to run.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Simulated tick rate.")
	flag.IntVar(&cfg.JumpEvery, "jump-every", 90, "Press jump every N ticks (0 = never).")
	flag.IntVar(&cfg.LoseEvery, "lose-every", 0, "Lose the device every N updates (0 = never).")
	flag.BoolVar(&cfg.Fixed, "fixed", false, "Use a fixed timestep at -hz.")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Optional JSON config file.")
	flag.StringVar(&cfg.AssetRoot, "assets", "", "Asset directory with cat.png (default: synthetic texture).")
	flag.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Printf("Running %d ticks at %d Hz...\n", cfg.Frames, cfg.Hz)
	report, err := run(cfg)
	if err != nil {
		log.Fatalf("Soak run failed: %v", err)
	}
	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
