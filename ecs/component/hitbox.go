package component

import "github.com/jakecoffman/cp"

// Hitbox is a collision rectangle relative to the owning Transform. L/B hold
// the top-left offset and R/T the bottom-right offset, in screen space (y down).
type Hitbox struct {
	Offset cp.BB
}

// World returns the hitbox in world coordinates for t.
func (h Hitbox) World(t Transform) cp.BB {
	return cp.BB{
		L: t.X + h.Offset.L,
		B: t.Y + h.Offset.B,
		R: t.X + h.Offset.R,
		T: t.Y + h.Offset.T,
	}
}

// Collidable marks entities that block movement.
type Collidable struct{}

var (
	HitboxComponent     = NewComponent[Hitbox]()
	CollidableComponent = NewComponent[Collidable]()
)
