package component

import "github.com/jakecoffman/cp"

// Mover holds the movement intent of a player or character. Blocked freezes
// the entity in place while a dialog or a transition is running.
type Mover struct {
	Speed     float64
	Direction cp.Vector
	Blocked   bool

	// Stalled is set by movement when the last step was fully rejected by
	// collisions.
	Stalled bool
}

// Moving reports whether the entity is trying to move this frame.
func (m Mover) Moving() bool {
	return m.Direction.X != 0 || m.Direction.Y != 0
}

var MoverComponent = NewComponent[Mover]()
