package component

// Player tags the single controllable entity of a world. Noticed is set while
// a trainer has spotted the player and is walking over.
type Player struct {
	Noticed bool
}

var PlayerComponent = NewComponent[Player]()
