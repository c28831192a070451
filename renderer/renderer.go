// Package renderer draws the simulation's mesh batches, ground and scenery with raylib.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bugloop/camera"
)

// lightDir is the fixed sun direction in world space (z up).
var lightDir = r3.Unit(r3.Vec{X: 0.3, Y: -0.4, Z: 0.85})

// Vec3 converts a world point (x east, y north, z up) to raylib space (y up).
func Vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Z), Z: float32(-v.Y)}
}

// Camera3D builds the raylib camera for an orbit camera. fov is the vertical
// field of view in degrees.
func Camera3D(cam *camera.Camera, fov float64) rl.Camera3D {
	return rl.Camera3D{
		Position:   Vec3(cam.Position()),
		Target:     Vec3(cam.LookAt),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(fov),
		Projection: rl.CameraPerspective,
	}
}

// shade darkens c by how far the surface direction n faces away from the sun.
// A zero n leaves the color unchanged.
func shade(c color.RGBA, n r3.Vec) color.RGBA {
	if n == (r3.Vec{}) {
		return c
	}
	lambert := math.Max(0, r3.Dot(r3.Unit(n), lightDir))
	k := 0.55 + 0.45*lambert
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
