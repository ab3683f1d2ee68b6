package bunnymark

import (
	"errors"
	"fmt"
	"time"
)

// Config holds everything the launcher can tune.
type Config struct {
	// InitialBunnies is the Desired count the demo starts with.
	InitialBunnies uint64
	Width, Height  int
	// Tiles enables the background tiler.
	Tiles    bool
	TileSize int
	// Seed seeds the spawner; 0 picks a random seed.
	Seed uint64
	// Debug shows the ImGui overlay.
	Debug bool
	// DiagnosticsInterval is how often frame timings are logged. Zero
	// disables the log.
	DiagnosticsInterval time.Duration
}

// DefaultConfig returns the settings the demo ships with.
func DefaultConfig() Config {
	return Config{
		InitialBunnies:      DefaultBunnies,
		Width:               800,
		Height:              600,
		TileSize:            64,
		DiagnosticsInterval: time.Second,
	}
}

// Validate reports the first setting the demo cannot run with.
func (c Config) Validate() error {
	if c.InitialBunnies == 0 {
		return errors.New("bunnymark: initial bunnies must be positive")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bunnymark: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Tiles && c.TileSize <= 0 {
		return fmt.Errorf("bunnymark: invalid tile size %d", c.TileSize)
	}
	if c.DiagnosticsInterval < 0 {
		return fmt.Errorf("bunnymark: negative diagnostics interval %s", c.DiagnosticsInterval)
	}
	return nil
}
