package game

import "math"

// Attract mode camera breathing
const (
	attractDistance = 80.0
	attractSwing    = 20.0
)

// Controls is one frame of player input.
type Controls struct {
	Up, Down, Left, Right bool
	ZoomIn, ZoomOut       bool
	TiltDown, TiltUp      bool
}

// applyControls moves the player loop and adjusts the camera. Movement is
// in world units per frame; screen up is north (+y).
func (g *Game) applyControls(c Controls) {
	player := g.world.PlayerLoop()
	if player >= 0 {
		step := g.cfg.Player.MoveSpeed
		var dx, dy float64
		if c.Up {
			dy += step
		}
		if c.Down {
			dy -= step
		}
		if c.Right {
			dx += step
		}
		if c.Left {
			dx -= step
		}
		g.world.MoveLoop(player, dx, dy)
	}

	if c.ZoomIn {
		g.camera.ZoomBy(g.cfg.Camera.ZoomSpeed)
	}
	if c.ZoomOut {
		g.camera.ZoomBy(1 / g.cfg.Camera.ZoomSpeed)
	}
	if c.TiltDown {
		g.camera.TiltBy(-g.cfg.Camera.TiltSpeed)
	}
	if c.TiltUp {
		g.camera.TiltBy(g.cfg.Camera.TiltSpeed)
	}
}

// attract drifts the player loop along a looping path and swings the camera
// distance while the menu is showing. t is the animation clock in seconds.
func (g *Game) attract(t float64) {
	if player := g.world.PlayerLoop(); player >= 0 {
		dx, dy := attractDrift(t)
		g.world.MoveLoop(player, dx, dy)
	}
	g.camera.SetDistance(attractDistance + math.Sin(t)*attractSwing)
}

// attractDrift returns the per-frame player displacement at time t.
func attractDrift(t float64) (dx, dy float64) {
	return math.Cos(t) * (1.2 + math.Sin(2*t)), math.Sin(t) * (1.2 + math.Cos(t))
}
