// Package systems implements the per-frame bug/loop simulation: grouping of
// bugs into loops, loop AI, bug locomotion and inter-loop conversion.
package systems

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/components"
	"github.com/pthm-cable/bugloop/config"
)

// ErrCapacity is returned when adding a bug or loop beyond the world's fixed capacity.
var ErrCapacity = errors.New("world capacity exceeded")

// Rand is the uniform random source used by the simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// IndexState tracks whether the loop member views match the bugs' loop assignments.
type IndexState uint8

const (
	IndexClean IndexState = iota
	IndexDirty
)

// Loop setup
const (
	initialLoopRadius = 20.0
	minSpeedFactor    = 0.8
	maxSpeedFactor    = 1.0
	loopHoverHeight   = 0.0
)

// Bug setup
const (
	spawnHeight = 1.0
	spawnZVel   = 1.0
)

// Palette cycles through loop colors by loop index.
var Palette = [8]color.RGBA{
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	{R: 0x00, G: 0x64, B: 0x00, A: 0xff},
	{R: 0x19, G: 0x19, B: 0x70, A: 0xff},
	{R: 0x2f, G: 0x4f, B: 0x4f, A: 0xff},
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff},
	{R: 0xff, G: 0xb6, B: 0xc1, A: 0xff},
}

// WorldConfig describes the arena and initial population.
type WorldConfig struct {
	Width, Height float64
	AISpeed       float64 // difficulty multiplier for rival loop movement

	Loops       int
	PlayerBugs  int // bugs in loop 0
	BugsPerLoop int // bugs in every other loop

	MaxBugs  int
	MaxLoops int
}

// WorldConfigFrom builds a WorldConfig from the loaded game configuration.
func WorldConfigFrom(cfg *config.Config, aiSpeed float64) WorldConfig {
	return WorldConfig{
		Width:       cfg.Arena.Width,
		Height:      cfg.Arena.Height,
		AISpeed:     aiSpeed,
		Loops:       cfg.Population.Loops,
		PlayerBugs:  cfg.Population.PlayerBugs,
		BugsPerLoop: cfg.Population.BugsPerLoop,
		MaxBugs:     cfg.Population.MaxBugs,
		MaxLoops:    cfg.Population.MaxLoops,
	}
}

// World owns every bug and loop and the shared member storage.
type World struct {
	Width, Height float64
	AISpeed       float64

	maxBugs  int
	maxLoops int

	bugs  []components.Bug
	loops []components.Loop

	// members holds bug indices packed loop by loop; each loop's Members
	// span points into it.
	members []int
	index   IndexState

	palette [8]color.RGBA
	rng     Rand

	conversions int
}

// NewWorld creates the loops and bugs described by cfg. Loop 0 is player controlled.
// Loops start at random positions; the caller may move the player loop with PlaceLoop.
func NewWorld(cfg WorldConfig, rng Rand) (*World, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("arena must have positive size, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.MaxBugs < 0 || cfg.MaxLoops < 0 {
		return nil, fmt.Errorf("negative capacity (bugs %d, loops %d)", cfg.MaxBugs, cfg.MaxLoops)
	}
	if rng == nil {
		return nil, errors.New("nil random source")
	}

	w := &World{
		Width:    cfg.Width,
		Height:   cfg.Height,
		AISpeed:  cfg.AISpeed,
		maxBugs:  cfg.MaxBugs,
		maxLoops: cfg.MaxLoops,
		bugs:     make([]components.Bug, 0, cfg.MaxBugs),
		loops:    make([]components.Loop, 0, cfg.MaxLoops),
		members:  make([]int, cfg.MaxBugs),
		index:    IndexDirty,
		palette:  Palette,
		rng:      rng,
	}

	for i := 0; i < cfg.Loops; i++ {
		loop, err := w.AddLoop()
		if err != nil {
			return nil, fmt.Errorf("creating loop %d: %w", i, err)
		}

		n := cfg.BugsPerLoop
		if i == 0 {
			n = cfg.PlayerBugs
			w.loops[loop].IsPlayerControlled = true
		}
		for j := 0; j < n; j++ {
			if _, err := w.AddBug(loop); err != nil {
				return nil, fmt.Errorf("populating loop %d: %w", i, err)
			}
		}
	}

	w.RebuildIndex()
	return w, nil
}

// AddLoop creates a loop at a random arena position and returns its index.
func (w *World) AddLoop() (int, error) {
	if len(w.loops) >= w.maxLoops {
		return -1, fmt.Errorf("adding loop %d of %d: %w", len(w.loops)+1, w.maxLoops, ErrCapacity)
	}

	w.loops = append(w.loops, components.Loop{
		Pos: r3.Vec{
			X: w.uniform(0, w.Width),
			Y: w.uniform(0, w.Height),
			Z: loopHoverHeight,
		},
		Radius:      initialLoopRadius,
		SpeedFactor: w.uniform(minSpeedFactor, maxSpeedFactor),
	})
	w.index = IndexDirty
	return len(w.loops) - 1, nil
}

// AddBug creates a bug at the center of the given loop and returns its index.
func (w *World) AddBug(loop int) (int, error) {
	if loop < 0 || loop >= len(w.loops) {
		return -1, fmt.Errorf("adding bug to loop %d: no such loop (have %d)", loop, len(w.loops))
	}
	if len(w.bugs) >= w.maxBugs {
		return -1, fmt.Errorf("adding bug %d of %d: %w", len(w.bugs)+1, w.maxBugs, ErrCapacity)
	}

	home := w.loops[loop].Pos
	w.bugs = append(w.bugs, components.Bug{
		Pos:   r3.Vec{X: home.X, Y: home.Y, Z: spawnHeight},
		ZVel:  spawnZVel,
		Scale: 1,
		Loop:  loop,
	})
	w.index = IndexDirty
	return len(w.bugs) - 1, nil
}

// PlaceLoop moves a loop's center on the ground plane.
func (w *World) PlaceLoop(loop int, x, y float64) {
	w.loops[loop].Pos.X = x
	w.loops[loop].Pos.Y = y
}

// MoveLoop displaces a loop's center on the ground plane.
func (w *World) MoveLoop(loop int, dx, dy float64) {
	w.loops[loop].Pos.X += dx
	w.loops[loop].Pos.Y += dy
}

// Bugs returns the live bugs. Callers must not change Bug.Loop directly.
func (w *World) Bugs() []components.Bug {
	return w.bugs
}

// Loops returns the live loops.
func (w *World) Loops() []components.Loop {
	return w.loops
}

// Loop returns the loop at index i.
func (w *World) Loop(i int) *components.Loop {
	return &w.loops[i]
}

// LiveBugs returns the number of bugs in the world.
func (w *World) LiveBugs() int {
	return len(w.bugs)
}

// LoopCount returns the number of loops in the world.
func (w *World) LoopCount() int {
	return len(w.loops)
}

// MemberCount returns the number of bugs in loop i as of the last index rebuild.
func (w *World) MemberCount(i int) int {
	return w.loops[i].MemberCount()
}

// PlayerLoop returns the index of the player-controlled loop, or -1 if there is none.
func (w *World) PlayerLoop() int {
	for i := range w.loops {
		if w.loops[i].IsPlayerControlled {
			return i
		}
	}
	return -1
}

// LoopColor returns the display color of loop i.
func (w *World) LoopColor(i int) color.RGBA {
	return w.palette[i%len(w.palette)]
}

// Conversions returns the total number of bugs that changed loop since creation.
func (w *World) Conversions() int {
	return w.conversions
}

// IndexState reports whether member views are current.
func (w *World) IndexState() IndexState {
	return w.index
}

// uniform returns a value in [lo, hi).
func (w *World) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*w.rng.Float64()
}
