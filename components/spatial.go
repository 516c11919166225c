package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32 `inspect:"label,fmt:%.1f"`
}

// Motion holds heading and scalar speed.
type Motion struct {
	Heading float32 `inspect:"angle"` // radians, (-Pi, Pi]
	Speed   float32 `inspect:"bar,max:2"`
}
