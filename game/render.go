package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bugloop/renderer"
	"github.com/pthm-cable/bugloop/systems"
	"github.com/pthm-cable/bugloop/ui"
)

var clearColor = rl.Color{R: 224, G: 255, B: 254, A: 255}

// Draw renders the world from the orbit camera, then the UI for the current state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(clearColor)

	rl.BeginMode3D(renderer.Camera3D(g.camera, g.cfg.Camera.FOV))
	g.ground.Draw()
	renderer.DrawBatch(g.sceneryBatch)
	renderer.DrawBatch(g.batch)
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawUI draws the menu or the HUD. Button presses change state here since
// raygui reports them while drawing.
func (g *Game) drawUI() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	switch g.state {
	case StateMenu:
		res := g.ui.DrawMenu(screenW, screenH, g.aiSpeed, g.cfg)
		g.aiSpeed = res.AISpeed
		g.world.AISpeed = res.AISpeed
		if res.Start {
			g.startRound()
		}

	case StatePlaying:
		player := g.world.PlayerLoop()
		playerBugs := 0
		playerColor := rl.Gray
		if player >= 0 {
			playerBugs = g.world.MemberCount(player)
			playerColor = g.world.LoopColor(player)
		}
		g.ui.DrawHUD(ui.HUDData{
			PlayerBugs:  playerBugs,
			LiveBugs:    g.world.LiveBugs(),
			LiveLoops:   liveLoops(g.world),
			PlayerShare: systems.PlayerShare(g.world),
			WinShare:    systems.WinShare,
			AISpeed:     g.aiSpeed,
			PlayerColor: playerColor,
		})

		if g.outcome != systems.OutcomePlaying && g.ui.DrawOutcome(screenW, outcomeTitle(g.outcome)) {
			g.backToMenu()
		}
	}
}
