package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// lerp returns a + (b-a)*t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpVec interpolates each component of a toward b.
func lerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// planar drops the height component.
func planar(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y}
}

// planarDistSq returns the squared ground-plane distance between two points.
func planarDistSq(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// planarDist returns the ground-plane distance between two points.
func planarDist(a, b r3.Vec) float64 {
	return math.Sqrt(planarDistSq(a, b))
}

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
