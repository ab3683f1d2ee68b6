package main

import (
	"bytes"
	"io"
	"log"
	"testing"
	"time"

	"github.com/plus3/bunnymark/internal/assets"
	"github.com/plus3/bunnymark/internal/bunnymark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStressWorld(t *testing.T, bunnies uint64, doublings int) *bunnymark.World {
	t.Helper()

	cfg := bunnymark.DefaultConfig()
	cfg.InitialBunnies = bunnies
	cfg.Seed = 7
	cfg.DiagnosticsInterval = 0

	world, err := bunnymark.NewWorld(cfg, assets.NewServer(assets.Embedded()), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	world.Scheduler.Register(&autoDoubler{Remaining: doublings})
	return world
}

func TestAutoDoublerStopsAfterDoublings(t *testing.T) {
	world := newStressWorld(t, 2, 3)

	for range 10 {
		world.Scheduler.Once(1.0 / 60)
	}

	assert.Equal(t, bunnymark.BunnyCount{Current: 16, Desired: 16}, world.Count())
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	world := newStressWorld(t, 4, 1)
	for range 4 {
		world.Scheduler.Once(1.0 / 60)
	}

	report := &Report{
		Duration:   time.Second,
		Bunnies:    4,
		Doublings:  1,
		UpdateTime: Stats{Samples: []time.Duration{time.Millisecond}},
	}
	report.UpdateTime.Finalize()
	report.Collect(world)

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "--- Stress Test Report ---")
	assert.Contains(t, out, "- **Total Updates:** 4")
	assert.Contains(t, out, "- **Final Bunnies:** 8 / 8")
	assert.Contains(t, out, "  - **Avg:** 1ms")
	assert.Contains(t, out, "| SpawnSystem | 4 |")
	assert.Contains(t, out, "| autoDoubler | 4 |")
	assert.Contains(t, out, "  - 8 x bunnymark.Bunny, bunnymark.ChildOf, bunnymark.Sprite, bunnymark.Transform")
	assert.NotContains(t, out, "GC Pause")
	assert.Contains(t, out, "--- End of Report ---")
}
