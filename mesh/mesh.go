// Package mesh collects the colored line, trapezoid and circle primitives
// emitted by the simulation each frame.
package mesh

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sink consumes draw primitives. The current color set by SetColor applies to
// every primitive pushed after it until the next SetColor call.
type Sink interface {
	SetColor(c color.RGBA)
	PushLine(from, to r3.Vec, width float64, tint r3.Vec)
	PushTrapezoid(from, to r3.Vec, widthNear, widthFar float64, tint r3.Vec)
	PushWireCircle(center r3.Vec, radius float64, segments int, height float64)
}

// Line is a thick segment.
type Line struct {
	From, To r3.Vec
	Width    float64
	Tint     r3.Vec
	Color    color.RGBA
}

// Trapezoid is a filled quad from From (WidthNear wide) to To (WidthFar wide).
type Trapezoid struct {
	From, To            r3.Vec
	WidthNear, WidthFar float64
	Tint                r3.Vec
	Color               color.RGBA
}

// Circle is a wireframe ring drawn as a band of the given height.
type Circle struct {
	Center   r3.Vec
	Radius   float64
	Segments int
	Height   float64
	Color    color.RGBA
}

// Batch records primitives for one frame. The zero value is ready to use.
type Batch struct {
	color color.RGBA

	Lines      []Line
	Trapezoids []Trapezoid
	Circles    []Circle
}

// NewBatch creates a batch with room for the given number of primitives of each kind.
func NewBatch(capacity int) *Batch {
	return &Batch{
		Lines:      make([]Line, 0, capacity),
		Trapezoids: make([]Trapezoid, 0, capacity/8),
		Circles:    make([]Circle, 0, 64),
	}
}

// SetColor sets the color for subsequent primitives.
func (b *Batch) SetColor(c color.RGBA) {
	b.color = c
}

// PushLine records a line segment.
func (b *Batch) PushLine(from, to r3.Vec, width float64, tint r3.Vec) {
	b.Lines = append(b.Lines, Line{From: from, To: to, Width: width, Tint: tint, Color: b.color})
}

// PushTrapezoid records a trapezoid.
func (b *Batch) PushTrapezoid(from, to r3.Vec, widthNear, widthFar float64, tint r3.Vec) {
	b.Trapezoids = append(b.Trapezoids, Trapezoid{
		From: from, To: to,
		WidthNear: widthNear, WidthFar: widthFar,
		Tint:  tint,
		Color: b.color,
	})
}

// PushWireCircle records a wireframe circle.
func (b *Batch) PushWireCircle(center r3.Vec, radius float64, segments int, height float64) {
	b.Circles = append(b.Circles, Circle{Center: center, Radius: radius, Segments: segments, Height: height, Color: b.color})
}

// Len returns the total number of recorded primitives.
func (b *Batch) Len() int {
	return len(b.Lines) + len(b.Trapezoids) + len(b.Circles)
}

// Reset drops all primitives, keeping allocated storage.
func (b *Batch) Reset() {
	b.Lines = b.Lines[:0]
	b.Trapezoids = b.Trapezoids[:0]
	b.Circles = b.Circles[:0]
}

// Discard is a Sink that drops everything. Used by headless runs.
type Discard struct{}

func (Discard) SetColor(color.RGBA) {}
func (Discard) PushLine(_, _ r3.Vec, _ float64, _ r3.Vec) {}
func (Discard) PushTrapezoid(_, _ r3.Vec, _, _ float64, _ r3.Vec) {}
func (Discard) PushWireCircle(r3.Vec, float64, int, float64) {}
