package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/components"
	"github.com/pthm-cable/bugloop/mesh"
)

// Loop behavior constants
const (
	minLoopRadius     = 1.0
	centroidSmoothing = 0.95 // weight kept on the previous center each frame
	seekRadiusFactor  = 0.5  // rivals closer than radius*factor are left alone
	edgeThreshold     = 100.0
	edgeFactor        = 2.0
)

// Loop circle drawing
const (
	circleLift     = 0.1
	circleSegments = 20
	circleHeight   = 0.1
)

// StepLoops rebuilds the member index if needed, then recenters and resizes
// every loop and runs the rival AI. Emits one wire circle per loop.
func (w *World) StepLoops(m mesh.Sink) {
	w.ensureIndex()

	for i := range w.loops {
		loop := &w.loops[i]

		m.SetColor(w.LoopColor(i))
		m.PushWireCircle(r3.Add(loop.Pos, r3.Vec{Z: circleLift}), loop.Radius, circleSegments, circleHeight)

		w.settleLoop(i)

		if loop.IsPlayerControlled {
			continue
		}
		w.seekOrFlee(i)
		w.avoidEdges(loop)
	}
}

// settleLoop sizes the loop by its population and eases its center toward
// the members' centroid.
func (w *World) settleLoop(i int) {
	loop := &w.loops[i]
	n := loop.Members.Count
	if n == 0 {
		loop.Radius = minLoopRadius
		return
	}

	loop.Radius = 2 * math.Sqrt(float64(n))

	center := w.centroid(i)
	loop.Pos.X = lerp(center.X, loop.Pos.X, centroidSmoothing)
	loop.Pos.Y = lerp(center.Y, loop.Pos.Y, centroidSmoothing)
}

// centroid returns the mean planar position of loop i's members.
// The loop must have at least one member.
func (w *World) centroid(i int) r3.Vec {
	var sum r3.Vec
	members := w.memberView(i)
	for _, b := range members {
		sum = r3.Add(sum, planar(w.bugs[b].Pos))
	}
	return r3.Scale(1/float64(len(members)), sum)
}

// seekOrFlee moves loop i toward its nearest non-empty rival if that rival is
// smaller, and away from it otherwise.
func (w *World) seekOrFlee(i int) {
	loop := &w.loops[i]

	nearest := -1
	minDist := math.Inf(1)
	var toRival r3.Vec
	for j := range w.loops {
		if j == i || w.loops[j].Members.Count == 0 {
			continue
		}
		d := planar(r3.Sub(w.loops[j].Pos, loop.Pos))
		if dist := r3.Norm(d); dist < minDist {
			minDist = dist
			nearest = j
			toRival = d
		}
	}

	if nearest < 0 || minDist <= loop.Radius*seekRadiusFactor {
		return
	}

	step := r3.Scale(w.AISpeed*loop.SpeedFactor, r3.Unit(toRival))
	if w.loops[nearest].Members.Count < loop.Members.Count {
		loop.Pos = r3.Add(loop.Pos, step)
	} else {
		loop.Pos = r3.Sub(loop.Pos, step)
	}
}

// avoidEdges pushes the loop away from the single nearest arena boundary.
func (w *World) avoidEdges(loop *components.Loop) {
	nearest := math.Inf(1)
	var away r3.Vec

	if d := loop.Pos.X; d < nearest {
		nearest, away = d, r3.Vec{X: 1}
	}
	if d := w.Width - loop.Pos.X; d < nearest {
		nearest, away = d, r3.Vec{X: -1}
	}
	if d := loop.Pos.Y; d < nearest {
		nearest, away = d, r3.Vec{Y: 1}
	}
	if d := w.Height - loop.Pos.Y; d < nearest {
		nearest, away = d, r3.Vec{Y: -1}
	}

	if nearest < edgeThreshold {
		push := (edgeThreshold - nearest) * edgeFactor / edgeThreshold
		loop.Pos = r3.Add(loop.Pos, r3.Scale(push, away))
	}
}
