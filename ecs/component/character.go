package component

import "github.com/milk9111/tilequest/monster"

// DialogLines holds what a character says before and after being beaten.
type DialogLines struct {
	Default  []string
	Defeated []string
}

// Character is a non-player entity that can be talked to and, for trainers
// with LookAround set, can spot the player on its own.
type Character struct {
	ID         string
	Radius     float64
	LookAround bool
	Directions []Direction
	Dialog     DialogLines
	Defeated   bool
	Biome      string
	Party      []*monster.Monster

	// CanRotate is cleared while the character is locked onto the player and
	// restored by whoever ends the dialog.
	CanRotate bool

	// Notice state.
	Noticed     bool
	HasMoved    bool
	NoticeTimer float64
	LookTimer   float64
}

// Lines returns the dialog for the character's current state.
func (c *Character) Lines() []string {
	if c.Defeated && len(c.Dialog.Defeated) > 0 {
		return c.Dialog.Defeated
	}
	return c.Dialog.Default
}

var CharacterComponent = NewComponent[Character]()
