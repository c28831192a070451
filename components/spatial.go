package components

// Position is a scenery prop's location on the ground plane.
// Z is the height of the prop's base.
type Position struct {
	X, Y, Z float64
}

// PropKind identifies the kind of static scenery prop.
type PropKind uint8

const (
	PropCactus PropKind = iota
)

// Prop holds the visual parameters of a static scenery prop.
type Prop struct {
	Kind   PropKind
	Height float64
	Arms   uint8 // side branches
}
