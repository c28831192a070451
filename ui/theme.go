// Package ui draws the menu, in-game HUD and outcome panel with raylib and raygui.
package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Title          rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 245, G: 245, B: 240, A: 235},
		PanelBorder:    rl.Color{R: 90, G: 90, B: 90, A: 255},
		Title:          rl.DarkGray,
		LabelColor:     rl.Gray,
		ValueColor:     rl.DarkGray,
		BarBg:          rl.Color{R: 210, G: 210, B: 210, A: 255},
		Padding:        10,
		LineHeight:     20,
		LabelWidth:     110,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 20,
	}
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawTitle draws a panel title and returns the next Y position.
func (r *Renderer) DrawTitle(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.Title)
	return y + r.Theme.HeaderFontSize + r.Theme.Padding
}

// DrawLabelValue draws a label and value on the same line and returns the next Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a labelled [0, 1] bar filled with fill and returns the next Y position.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32, fill rl.Color) int32 {
	value = max(0, min(1, value))

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*value), r.Theme.BarHeight, fill)

	return y + r.Theme.LineHeight
}

// DrawWrapped draws text word-wrapped into a box width wide and lines tall.
// Returns the next Y position.
func (r *Renderer) DrawWrapped(x, y int32, text string, width, lines int32) int32 {
	height := lines * r.Theme.LineHeight
	saved := pushStyles(guiStyles{}, wrappedLabelStyles(r.Theme))
	gui.Label(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}, text)
	popStyles(guiStyles{}, saved)
	return y + height
}
