package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/scenery"
)

// Ground palette, lowest to highest
var (
	sandLow  = color.RGBA{R: 168, G: 142, B: 96, A: 255}
	sandHigh = color.RGBA{R: 222, G: 198, B: 142, A: 255}
)

// GroundRenderer draws the ground height field as shaded triangles.
// Per-vertex colors are computed once on first draw.
type GroundRenderer struct {
	ground      *scenery.Ground
	colors      []color.RGBA // one per tile, two triangles share it
	initialized bool
}

// NewGroundRenderer creates a renderer for g.
func NewGroundRenderer(g *scenery.Ground) *GroundRenderer {
	return &GroundRenderer{ground: g}
}

func (r *GroundRenderer) init() {
	g := r.ground
	r.colors = r.colors[:0]

	lo, hi := g.Vertex(0, 0).Z, g.Vertex(0, 0).Z
	for j := 0; j <= g.Rows; j++ {
		for i := 0; i <= g.Cols; i++ {
			z := g.Vertex(i, j).Z
			lo, hi = min(lo, z), max(hi, z)
		}
	}

	for j := 0; j < g.Rows; j++ {
		for i := 0; i < g.Cols; i++ {
			a, b, c := g.Vertex(i, j), g.Vertex(i+1, j), g.Vertex(i, j+1)
			normal := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))

			t := 0.5
			if hi > lo {
				t = ((a.Z+b.Z+c.Z)/3 - lo) / (hi - lo)
			}
			r.colors = append(r.colors, shade(mix(sandLow, sandHigh, t), normal))
		}
	}
	r.initialized = true
}

// Draw renders the ground. Must be called between rl.BeginMode3D and rl.EndMode3D.
func (r *GroundRenderer) Draw() {
	if r.ground == nil {
		return
	}
	if !r.initialized {
		r.init()
	}

	g := r.ground
	for j := 0; j < g.Rows; j++ {
		for i := 0; i < g.Cols; i++ {
			a := Vec3(g.Vertex(i, j))
			b := Vec3(g.Vertex(i+1, j))
			c := Vec3(g.Vertex(i+1, j+1))
			d := Vec3(g.Vertex(i, j+1))
			col := r.colors[j*g.Cols+i]
			rl.DrawTriangle3D(a, b, c, col)
			rl.DrawTriangle3D(a, c, d, col)
		}
	}
}

// mix linearly blends two colors.
func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}
