package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bugloop/config"
)

// Menu panel layout
const (
	menuWidth        = 330
	menuHeight       = 290
	instructionLines = 5
)

// Instructions is the help text shown on the menu.
const Instructions = "Steer your loop into other loops to win their bugs. " +
	"Bugs from the smaller loop are more likely to switch sides. " +
	"Move: WASD/arrows, zoom: Z, X, tilt camera: Q, E"

// MenuResult is what the player chose on the menu this frame.
type MenuResult struct {
	Start   bool    // Start button pressed
	AISpeed float64 // Difficulty after slider input, snapped to the slider step
}

// DrawMenu draws the centered start menu and returns the player's choices.
func (r *Renderer) DrawMenu(screenW, screenH int32, aiSpeed float64, cfg *config.Config) MenuResult {
	x := (screenW - menuWidth) / 2
	y := (screenH - menuHeight) / 2
	pad := r.Theme.Padding
	inner := int32(menuWidth) - 2*pad

	r.DrawPanel(x, y, menuWidth, menuHeight)
	cy := r.DrawTitle(x+pad, y+pad, "Bug Loop")

	start := gui.Button(rl.Rectangle{
		X: float32(x + pad), Y: float32(cy), Width: float32(inner), Height: 30,
	}, "Start")
	cy += 30 + pad

	cy = r.DrawWrapped(x+pad, cy, Instructions, inner, instructionLines)
	cy += pad

	rl.DrawText("Difficulty", x+pad, cy, r.Theme.FontSize, r.Theme.LabelColor)
	cy += r.Theme.LineHeight

	speed := gui.SliderBar(
		rl.Rectangle{X: float32(x + pad + 30), Y: float32(cy), Width: float32(inner - 60), Height: 20},
		fmt.Sprintf("%.1f", cfg.AI.MinSpeed), fmt.Sprintf("%.1f", cfg.AI.MaxSpeed),
		float32(aiSpeed), float32(cfg.AI.MinSpeed), float32(cfg.AI.MaxSpeed),
	)
	snapped := cfg.SnapAISpeed(float64(speed))
	rl.DrawText(fmt.Sprintf("%.1f", snapped), x+pad+inner/2-10, cy+24, r.Theme.FontSize, r.Theme.ValueColor)

	return MenuResult{Start: start, AISpeed: snapped}
}
