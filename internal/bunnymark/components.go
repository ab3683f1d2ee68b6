// Package bunnymark is the sprite stress test itself: the components, the
// per-frame systems and the setup that spawns the world. It only talks to the
// ecs host and never to a window, so everything here runs headless.
package bunnymark

import (
	"math"

	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
)

const (
	BunnyWidth     = 26
	BunnyHeight    = 37
	BaseSpeed      = 200.0
	DefaultBunnies = 128
	// TextPrefix is what the counter label starts with.
	TextPrefix = "Num. Bunnies: "
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Transform is a world position. The origin is the window centre and y points
// up; Z orders drawing, higher on top.
type Transform struct {
	X, Y, Z float64
}

// Bunny is the motion state of one bunny.
type Bunny struct {
	Direction   Vec2
	SpeedFactor float64
}

// ChildOf attaches an entity to its parent.
type ChildOf struct {
	Parent ecs.EntityId
}

// BunnyParent marks the single entity every bunny is a child of.
type BunnyParent struct{}

// Sprite is an image drawn centred on the entity's Transform.
type Sprite struct {
	Image assets.Handle
}

// Label is screen-space text. X and Y are pixels from the top-left corner.
type Label struct {
	Text string
	X, Y float64
}

// BunnyText marks the label showing the bunny count.
type BunnyText struct{}

// Tile is one cell of the background grid.
type Tile struct {
	X, Y int
}

// BunnyCount tracks how many bunnies exist and how many should.
// Current never exceeds Desired.
type BunnyCount struct {
	Current uint64
	Desired uint64
}

// Growing reports whether spawning has not caught up with Desired yet.
func (c BunnyCount) Growing() bool {
	return c.Current != c.Desired
}

// Window is the visible area in world units.
type Window struct {
	Width, Height float64
}

// WindowResized is sent whenever the visible area changes.
type WindowResized struct {
	Width, Height float64
}

// Input is the per-frame input sample.
type Input struct {
	// DoublePressed is true only for the frame the trigger key went down.
	DoublePressed bool
}

// Handles are the entities setup creates once and systems refer back to.
type Handles struct {
	Parent ecs.EntityId
	Text   ecs.EntityId
}

// RegisterComponents registers every component the demo spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Bunny](registry)
	ecs.RegisterComponent[ChildOf](registry)
	ecs.RegisterComponent[BunnyParent](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[BunnyText](registry)
	ecs.RegisterComponent[Tile](registry)
}
