package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/components"
)

// Leg placement constants
const (
	stepThreshold = 1.0 // feet re-plant once the ideal spot drifts this far
	footJitter    = 0.2
	hipDrop       = 1.0 // foot height below the body
)

// placeLegs anchors each leg pair on the body between back (from) and front
// (to) and re-plants a foot only when its ideal ground spot moved more than
// stepThreshold away. Feet therefore step rather than slide.
func (w *World) placeLegs(b *components.Bug, from, to, forward r3.Vec) {
	var ideal [components.LegCount]r3.Vec

	groundFrom, groundTo := planar(from), planar(to)
	for pair := 0; pair < components.LegCount/2; pair++ {
		t := 0.5 * float64(pair)
		hip := lerpVec(from, to, t)
		b.LegFrom[2*pair] = hip
		b.LegFrom[2*pair+1] = hip

		// Feet land a little ahead of their hips
		center := lerpVec(groundFrom, groundTo, t+0.5)
		center.Z = hip.Z - hipDrop
		ideal[2*pair], ideal[2*pair+1] = footPair(center, forward)
	}

	for i, spot := range ideal {
		if planarDist(spot, b.LegTo[i]) > stepThreshold {
			b.LegTo[i] = r3.Vec{
				X: spot.X + w.uniform(-footJitter, footJitter),
				Y: spot.Y + w.uniform(-footJitter, footJitter),
				Z: spot.Z,
			}
		}
	}
}

// footPair returns the left and right foot spots one unit either side of center.
func footPair(center, forward r3.Vec) (left, right r3.Vec) {
	left = r3.Vec{X: center.X - forward.Y, Y: center.Y + forward.X, Z: center.Z}
	right = r3.Vec{X: center.X + forward.Y, Y: center.Y - forward.X, Z: center.Z}
	return left, right
}
