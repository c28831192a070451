// Package camera provides an orbit camera that follows a point on the ground plane.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Distance limits keep the camera outside the ground and inside the far plane.
const (
	MinDistance = 5.0
	MaxDistance = 600.0
)

// Camera orbits LookAt on a sphere described by azimuth, tilt and distance.
// World axes are x east, y north, z up.
type Camera struct {
	// LookAt is the point the camera is aimed at
	LookAt r3.Vec

	// Azimuth rotates the camera around LookAt; 0 places it south of the target
	Azimuth float64

	// Tilt is the elevation above the ground plane in radians
	Tilt float64

	// Distance from LookAt
	Distance float64

	// Tilt constraints
	MinTilt, MaxTilt float64

	defaultDistance, defaultTilt float64
}

// New creates a camera looking at the origin. Tilt is clamped to
// [minTilt, maxTilt].
func New(distance, tilt, minTilt, maxTilt float64) *Camera {
	c := &Camera{
		MinTilt:         minTilt,
		MaxTilt:         maxTilt,
		defaultDistance: distance,
		defaultTilt:     tilt,
	}
	c.Reset()
	return c
}

// Position returns the camera's eye point in world coordinates.
func (c *Camera) Position() r3.Vec {
	cosT, sinT := math.Cos(c.Tilt), math.Sin(c.Tilt)
	offset := r3.Vec{
		X: cosT * math.Sin(c.Azimuth),
		Y: -cosT * math.Cos(c.Azimuth),
		Z: sinT,
	}
	return r3.Add(c.LookAt, r3.Scale(c.Distance, offset))
}

// Forward returns the unit view direction from the eye to LookAt.
func (c *Camera) Forward() r3.Vec {
	return r3.Unit(r3.Sub(c.LookAt, c.Position()))
}

// Follow aims the camera at target.
func (c *Camera) Follow(target r3.Vec) {
	c.LookAt = target
}

// SetDistance sets the orbit distance, clamped to [MinDistance, MaxDistance].
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, MinDistance, MaxDistance)
}

// ZoomBy multiplies the orbit distance by factor. Factors below 1 move closer.
func (c *Camera) ZoomBy(factor float64) {
	c.SetDistance(c.Distance * factor)
}

// TiltBy changes the elevation by delta radians, clamped to [MinTilt, MaxTilt].
func (c *Camera) TiltBy(delta float64) {
	c.Tilt = clamp(c.Tilt+delta, c.MinTilt, c.MaxTilt)
}

// Reset restores the distance and tilt the camera was created with.
func (c *Camera) Reset() {
	c.Azimuth = 0
	c.SetDistance(c.defaultDistance)
	c.Tilt = clamp(c.defaultTilt, c.MinTilt, c.MaxTilt)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
