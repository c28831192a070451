// Package scenery builds the static ground and props surrounding the arena.
// Props live in an ECS world so the renderer can query them by component.
package scenery

import (
	"image/color"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/components"
	"github.com/pthm-cable/bugloop/config"
	"github.com/pthm-cable/bugloop/mesh"
)

// Cactus shape
const (
	cactusHeight    = 5.0
	cactusSink      = -1.0 // base sits this far below the ground surface
	cactusMaxArms   = 3
	trunkWidth      = 0.8
	armWidth        = 0.5
	armReach        = 1.2
	armRise         = 1.5
	armStartFactor  = 0.35 // first arm height as a fraction of the trunk
	armSpacingRatio = 0.15
)

// CactusColor is the fill color of every cactus.
var CactusColor = color.RGBA{R: 0x3c, G: 0x8c, B: 0x3c, A: 0xff}

var propTint = r3.Vec{Z: 1}

// Scenery holds the ground height field and the prop entities.
type Scenery struct {
	Ground *Ground

	world  *ecs.World
	props  *ecs.Map2[components.Position, components.Prop]
	filter *ecs.Filter2[components.Position, components.Prop]
}

// New builds the ground and scatters cfg.Cacti cacti across the arena.
func New(cfg config.SceneryConfig, width, height float64, seed int64) *Scenery {
	world := ecs.NewWorld()
	s := &Scenery{
		Ground: NewGround(width, height, cfg.TileSize, cfg.NoiseScale, cfg.HeightScale, seed),
		world:  world,
		props:  ecs.NewMap2[components.Position, components.Prop](world),
		filter: ecs.NewFilter2[components.Position, components.Prop](world),
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < cfg.Cacti; i++ {
		x, y := rng.Float64()*width, rng.Float64()*height
		pos := components.Position{
			X: x,
			Y: y,
			Z: s.Ground.HeightAt(x, y) + cactusSink,
		}
		prop := components.Prop{
			Kind:   components.PropCactus,
			Height: cactusHeight,
			Arms:   uint8(rng.Intn(cactusMaxArms + 1)),
		}
		s.props.NewEntity(&pos, &prop)
	}
	return s
}

// PropCount returns the number of prop entities.
func (s *Scenery) PropCount() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// EachProp calls fn for every prop entity.
func (s *Scenery) EachProp(fn func(pos *components.Position, prop *components.Prop)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Draw emits every prop as line primitives.
func (s *Scenery) Draw(m mesh.Sink) {
	m.SetColor(CactusColor)
	s.EachProp(func(pos *components.Position, prop *components.Prop) {
		switch prop.Kind {
		case components.PropCactus:
			drawCactus(m, r3.Vec{X: pos.X, Y: pos.Y, Z: pos.Z}, prop)
		}
	})
}

// drawCactus emits a trunk and alternating L-shaped arms.
func drawCactus(m mesh.Sink, base r3.Vec, prop *components.Prop) {
	top := r3.Add(base, r3.Vec{Z: prop.Height})
	m.PushLine(base, top, trunkWidth, propTint)

	for i := 0; i < int(prop.Arms); i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		z := prop.Height * (armStartFactor + armSpacingRatio*float64(i))
		joint := r3.Add(base, r3.Vec{Z: z})
		elbow := r3.Add(joint, r3.Vec{X: side * armReach})
		tip := r3.Add(elbow, r3.Vec{Z: armRise})
		m.PushLine(joint, elbow, armWidth, propTint)
		m.PushLine(elbow, tip, armWidth, propTint)
	}
}
