package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/mesh"
)

// lineSides is the cylinder resolution used for thick lines.
const lineSides = 4

// DrawBatch renders every primitive recorded in b. Must be called between
// rl.BeginMode3D and rl.EndMode3D.
func DrawBatch(b *mesh.Batch) {
	for i := range b.Circles {
		drawCircle(&b.Circles[i])
	}
	for i := range b.Trapezoids {
		drawTrapezoid(&b.Trapezoids[i])
	}
	for i := range b.Lines {
		l := &b.Lines[i]
		r := float32(l.Width / 2)
		rl.DrawCylinderEx(Vec3(l.From), Vec3(l.To), r, r, lineSides, shade(l.Color, l.Tint))
	}
}

// drawTrapezoid fills the quad with both windings so it shows from above and below.
func drawTrapezoid(t *mesh.Trapezoid) {
	dir := r3.Sub(t.To, t.From)
	dir.Z = 0
	if r3.Norm(dir) == 0 {
		return
	}
	dir = r3.Unit(dir)
	side := r3.Vec{X: -dir.Y, Y: dir.X}

	nl := Vec3(r3.Add(t.From, r3.Scale(t.WidthNear/2, side)))
	nr := Vec3(r3.Sub(t.From, r3.Scale(t.WidthNear/2, side)))
	fl := Vec3(r3.Add(t.To, r3.Scale(t.WidthFar/2, side)))
	fr := Vec3(r3.Sub(t.To, r3.Scale(t.WidthFar/2, side)))

	c := shade(t.Color, t.Tint)
	rl.DrawTriangle3D(nr, fr, fl, c)
	rl.DrawTriangle3D(nr, fl, nl, c)
	rl.DrawTriangle3D(nr, fl, fr, c)
	rl.DrawTriangle3D(nr, nl, fl, c)
}

// drawCircle draws a ring as a band of line segments.
func drawCircle(c *mesh.Circle) {
	if c.Segments < 3 {
		return
	}
	step := 2 * math.Pi / float64(c.Segments)
	up := r3.Vec{Z: c.Height}

	prev := r3.Add(c.Center, r3.Vec{X: c.Radius})
	for k := 1; k <= c.Segments; k++ {
		a := step * float64(k)
		next := r3.Add(c.Center, r3.Vec{X: c.Radius * math.Cos(a), Y: c.Radius * math.Sin(a)})
		rl.DrawLine3D(Vec3(prev), Vec3(next), c.Color)
		rl.DrawLine3D(Vec3(r3.Add(prev, up)), Vec3(r3.Add(next, up)), c.Color)
		rl.DrawLine3D(Vec3(prev), Vec3(r3.Add(prev, up)), c.Color)
		prev = next
	}
}
