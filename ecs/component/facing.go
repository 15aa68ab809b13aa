package component

// Direction is one of the four facing directions used by character sheets.
type Direction string

const (
	DirDown  Direction = "down"
	DirUp    Direction = "up"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	switch d {
	case DirDown, DirUp, DirLeft, DirRight:
		return true
	}
	return false
}

type Facing struct {
	Direction Direction
}

var FacingComponent = NewComponent[Facing]()
