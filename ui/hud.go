package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData is the per-frame information shown while playing.
type HUDData struct {
	PlayerBugs  int
	LiveBugs    int
	LiveLoops   int
	PlayerShare float64
	WinShare    float64
	AISpeed     float64
	PlayerColor rl.Color
}

// DrawHUD draws the bug counter across the top-left and a stats panel beneath it.
func (r *Renderer) DrawHUD(d HUDData) {
	rl.DrawRectangle(0, 0, 400, 40, r.Theme.PanelBg)
	rl.DrawText(fmt.Sprintf("number of bugs %d", d.PlayerBugs), r.Theme.Padding, 10, r.Theme.HeaderFontSize, r.Theme.Title)

	x, y := r.Theme.Padding, int32(40)+r.Theme.Padding
	width := int32(260)
	r.DrawPanel(x-4, y-4, width+8, 4*r.Theme.LineHeight+8)

	y = r.DrawBar(x, y, "Share", float32(d.PlayerShare/d.WinShare), width, d.PlayerColor)
	y = r.DrawLabelValue(x, y, "Loops", fmt.Sprintf("%d", d.LiveLoops))
	y = r.DrawLabelValue(x, y, "Bugs", fmt.Sprintf("%d", d.LiveBugs))
	r.DrawLabelValue(x, y, "Difficulty", fmt.Sprintf("%.1f", d.AISpeed))

	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
}
