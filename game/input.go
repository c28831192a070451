package game

import rl "github.com/gen2brain/raylib-go/raylib"

// readControls samples the keyboard for this frame.
func readControls() Controls {
	return Controls{
		Up:       rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		Down:     rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
		Left:     rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right:    rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
		ZoomIn:   rl.IsKeyDown(rl.KeyZ),
		ZoomOut:  rl.IsKeyDown(rl.KeyX),
		TiltDown: rl.IsKeyDown(rl.KeyQ),
		TiltUp:   rl.IsKeyDown(rl.KeyE),
	}
}

// Update handles input for the current state and advances the simulation.
// The world keeps running behind the menu.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	switch g.state {
	case StateMenu:
		g.attract(g.clock)
	case StatePlaying:
		g.applyControls(readControls())
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
	g.followPlayer()
}
