package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Outcome panel layout
const (
	outcomeWidth  = 330
	outcomeHeight = 80
)

// DrawOutcome draws the round result at the top center of the screen.
// Returns true when the player dismisses it.
func (r *Renderer) DrawOutcome(screenW int32, title string) bool {
	x := (screenW - outcomeWidth) / 2
	y := r.Theme.Padding
	pad := r.Theme.Padding

	r.DrawPanel(x, y, outcomeWidth, outcomeHeight)
	textW := rl.MeasureText(title, r.Theme.HeaderFontSize)
	rl.DrawText(title, x+(outcomeWidth-textW)/2, y+pad, r.Theme.HeaderFontSize, r.Theme.Title)

	return gui.Button(rl.Rectangle{
		X:      float32(x + (outcomeWidth-80)/2),
		Y:      float32(y + outcomeHeight - 30 - pad),
		Width:  80,
		Height: 30,
	}, "OK")
}
