package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// styleProp is one raygui style property and its value.
type styleProp struct {
	control  int32
	property int32
	value    int64
}

// styleStore reads and writes style properties.
type styleStore interface {
	Get(control, property int32) int64
	Set(control, property int32, value int64)
}

// guiStyles is the live raygui style table.
type guiStyles struct{}

func (guiStyles) Get(control, property int32) int64 {
	return int64(gui.GetStyle(gui.ControlID(control), gui.PropertyID(property)))
}
func (guiStyles) Set(control, property int32, value int64) {
	gui.SetStyle(gui.ControlID(control), gui.PropertyID(property), gui.PropertyValue(value))
}

// pushStyles applies props and returns what they replaced, ordered for popStyles.
func pushStyles(s styleStore, props []styleProp) []styleProp {
	saved := make([]styleProp, len(props))
	for i, p := range props {
		saved[len(props)-1-i] = styleProp{
			control:  p.control,
			property: p.property,
			value:    s.Get(p.control, p.property),
		}
		s.Set(p.control, p.property, p.value)
	}
	return saved
}

// popStyles restores values saved by pushStyles.
func popStyles(s styleStore, saved []styleProp) {
	for _, p := range saved {
		s.Set(p.control, p.property, p.value)
	}
}

// wrappedLabelStyles configures raygui labels for top-aligned, word-wrapped
// body text in the theme's font size and color.
func wrappedLabelStyles(t Theme) []styleProp {
	return []styleProp{
		{int32(gui.DEFAULT), int32(gui.TEXT_SIZE), int64(t.FontSize)},
		{int32(gui.DEFAULT), int32(gui.TEXT_LINE_SPACING), int64(t.LineHeight)},
		{int32(gui.DEFAULT), int32(gui.TEXT_WRAP_MODE), int64(gui.TEXT_WRAP_WORD)},
		{int32(gui.DEFAULT), int32(gui.TEXT_ALIGNMENT_VERTICAL), int64(gui.TEXT_ALIGN_TOP)},
		{int32(gui.LABEL), int32(gui.TEXT_COLOR_NORMAL), int64(rl.ColorToInt(t.ValueColor))},
	}
}
