package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/components"
	"github.com/pthm-cable/bugloop/mesh"
)

// Locomotion constants
const (
	bugBaseSpeed  = 0.6
	farFromLoop   = 10.0 // bugs further than this from their boundary run at double speed
	steerRange    = 0.14 // max heading change per frame, radians
	gravity       = 0.05
	groundZ       = 1.0
	bounceDamping = -0.8
)

// Body drawing constants, all scaled by Bug.Scale
const (
	lineWidthFactor = 0.06
	bodyWidthNear   = 0.7
	bodyWidthFar    = 0.3
	antennaRate     = 6.0 // rad/s
	antennaSwing    = 0.3
	antennaSpread   = 0.5
)

var bodyTint = r3.Vec{Z: 1}

// StepBugs advances every bug, emits its body, antennae and legs, then runs
// the conversion pass over all loop pairs. t is the animation clock in seconds.
func (w *World) StepBugs(m mesh.Sink, t float64) {
	w.MoveBugs(m, t)
	w.Collide()
}

// MoveBugs advances and draws every bug. Loop positions must already be
// updated for this frame.
func (w *World) MoveBugs(m mesh.Sink, t float64) {
	for i := range w.bugs {
		b := &w.bugs[i]
		m.SetColor(w.LoopColor(b.Loop))

		c, s := math.Cos(b.Orientation), math.Sin(b.Orientation)
		w.moveBug(b, &w.loops[b.Loop], c, s)
		w.drawBug(m, b, c, s, t)
	}
}

// moveBug applies one frame of locomotion using the heading (c, s) the bug
// had at the start of the frame, then steers it around its loop boundary.
func (w *World) moveBug(b *components.Bug, loop *components.Loop, c, s float64) {
	speed := bugBaseSpeed * w.uniform(0, 1)

	toBug := planar(r3.Sub(b.Pos, loop.Pos))
	fromBoundary := r3.Norm(toBug) - loop.Radius
	if math.Abs(fromBoundary) > farFromLoop {
		speed *= 2
	}

	b.ZVel -= gravity
	b.Pos.X += c * speed
	b.Pos.Y += s * speed
	b.Pos.Z += b.ZVel
	if b.Pos.Z < groundZ {
		b.Pos.Z = groundZ
		b.ZVel *= bounceDamping
	}

	b.Orientation += w.steer(c, s, toBug, fromBoundary > 0)

	b.Pos.X = clampFloat(b.Pos.X, 0, w.Width)
	b.Pos.Y = clampFloat(b.Pos.Y, 0, w.Height)
}

// steer returns a random heading change. Outside the loop the bug turns
// toward the center; inside it turns away, so paths curl along the boundary.
func (w *World) steer(c, s float64, toBug r3.Vec, outside bool) float64 {
	turn := w.uniform(0, steerRange)

	// Positive cross product: the bug sits left of its heading relative to
	// the center, so the center is on its right.
	centerOnRight := c*toBug.Y-s*toBug.X > 0
	if centerOnRight == outside {
		return -turn
	}
	return turn
}

// drawBug emits the body trapezoid, two antennae and six legs.
func (w *World) drawBug(m mesh.Sink, b *components.Bug, c, s, t float64) {
	scale := b.Scale
	lineWidth := scale * lineWidthFactor
	forward := r3.Vec{X: c, Y: s}

	from := b.Pos
	to := r3.Add(from, r3.Scale(scale, forward))
	m.PushTrapezoid(from, to, bodyWidthNear*scale, bodyWidthFar*scale, bodyTint)

	theta := t * antennaRate
	swingCos := math.Cos(theta) * antennaSwing * scale
	swingSin := math.Sin(theta) * antennaSwing * scale
	spread := antennaSpread * scale
	left := r3.Add(to, r3.Vec{X: -s*spread + swingCos, Y: c*spread + swingSin, Z: scale})
	right := r3.Add(to, r3.Vec{X: s*spread - swingSin, Y: -c*spread + swingCos, Z: scale})
	m.PushLine(to, left, lineWidth, forward)
	m.PushLine(to, right, lineWidth, forward)

	w.placeLegs(b, from, to, forward)
	for i := range b.LegFrom {
		m.PushLine(b.LegFrom[i], b.LegTo[i], lineWidth, bodyTint)
	}
}
