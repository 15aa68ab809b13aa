package component

import "github.com/jakecoffman/cp"

// Transform is the top-left corner of an entity in world pixels.
type Transform struct {
	X float64
	Y float64
}

// Pos returns the transform as a vector.
func (t Transform) Pos() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()
