// Package components defines the data records of the bug/loop simulation
// and the ECS components used for scenery.
package components

import "gonum.org/v1/gonum/spatial/r3"

// LegCount is the number of legs on every bug (three left/right pairs).
const LegCount = 6

// Span is an index range into a shared backing slice.
// It never owns the storage it describes.
type Span struct {
	Offset int
	Count  int
}

// End returns the index one past the last element of the span.
func (s Span) End() int {
	return s.Offset + s.Count
}

// Bug is an autonomous agent belonging to exactly one loop.
type Bug struct {
	Orientation float64 // heading in radians
	Pos         r3.Vec  // x,y planar, z height above ground
	ZVel        float64
	Scale       float64 // grows every time the bug changes loop

	// Leg anchors on the body and their lagged ground targets
	LegFrom [LegCount]r3.Vec
	LegTo   [LegCount]r3.Vec

	Loop int // index of the owning loop
}

// Loop is a territorial group with a moving circular boundary.
type Loop struct {
	Pos         r3.Vec
	Radius      float64
	SpeedFactor float64 // fixed AI aggressiveness multiplier

	// Members is this loop's view into the world's member slice.
	// Only valid while the world's grouping index is clean.
	Members Span

	IsPlayerControlled bool
}

// MemberCount returns the number of bugs in the loop as of the last index rebuild.
func (l *Loop) MemberCount() int {
	return l.Members.Count
}
