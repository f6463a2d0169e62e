package core

// Drawable is implemented by entities that paint themselves onto a screen.
// Draw must only touch cells inside the entity's own footprint.
type Drawable interface {
	Draw(dst *Screen)
}

// Kinetic is implemented by entities that move under their own update rule.
// Translate advances the entity one tick and reports whether it is still in
// play. An entity that returns false is removed by its owner and never drawn again.
type Kinetic interface {
	Translate() bool
}
