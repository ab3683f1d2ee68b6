package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
	"github.com/plus3/bunnymark/internal/bunnymark"
)

// autoDoubler presses the double key for the stress run: whenever a batch is
// fully spawned and doublings remain, the next frame sees a press.
type autoDoubler struct {
	Count ecs.Singleton[bunnymark.BunnyCount]
	Input ecs.Singleton[bunnymark.Input]

	Remaining int
}

func (a *autoDoubler) Execute(frame *ecs.UpdateFrame) {
	input := a.Input.MustGet()
	input.DoublePressed = false
	if a.Remaining > 0 && !a.Count.MustGet().Growing() {
		input.DoublePressed = true
		a.Remaining--
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	bunnies := flag.Uint64("bunnies", bunnymark.DefaultBunnies, "The initial number of bunnies.")
	doublings := flag.Int("doublings", 8, "How many times to double the bunnies during the run.")
	tiles := flag.Bool("tiles", false, "Spawn background tiles as well.")
	seed := flag.Uint64("seed", 1, "Random seed, 0 picks one.")
	interval := flag.Duration("interval", 0, "Fixed frame interval; 0 runs frames back to back.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the current directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("Unknown profile mode %q", *profileMode)
	}

	log.Println("Starting bunnymark stress test...")

	cfg := bunnymark.DefaultConfig()
	cfg.InitialBunnies = *bunnies
	cfg.Tiles = *tiles
	cfg.Seed = *seed
	cfg.DiagnosticsInterval = 0

	world, err := bunnymark.NewWorld(cfg, assets.NewServer(assets.Embedded()), log.Default())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	world.Scheduler.Register(&autoDoubler{Remaining: *doublings})

	report := &Report{
		Duration:       *duration,
		Bunnies:        *bunnies,
		Doublings:      *doublings,
		Interval:       *interval,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if *interval > 0 {
		world.Scheduler.Run(ctx, *interval)
	} else {
		report.UpdateTime.Samples = runBackToBack(ctx, world.Scheduler)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Collect(world)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	if err := printReport(os.Stdout, report); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	log.Println("Stress test complete.")
}

func runBackToBack(ctx context.Context, scheduler *ecs.Scheduler) []time.Duration {
	var samples []time.Duration
	lastFrameTime := time.Now()
	for ctx.Err() == nil {
		deltaTime := time.Since(lastFrameTime)
		lastFrameTime = time.Now()

		updateStart := time.Now()
		scheduler.Once(deltaTime.Seconds())
		samples = append(samples, time.Since(updateStart))
	}
	return samples
}

func printReport(w io.Writer, report *Report) error {
	fmt.Fprintln(w, "\n\n--- Stress Test Report ---")
	if err := report.Generate(w); err != nil {
		return err
	}
	fmt.Fprintln(w, "--- End of Report ---")
	return nil
}
