package entity

import (
	"fmt"

	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// CharacterPlacement carries everything needed to place one character.
type CharacterPlacement struct {
	X, Y      float64
	Graphic   string
	Direction component.Direction
	Character component.Character
}

// NewCharacterAt places a character with its sprite centred on p.X,p.Y. It
// joins the collision and character groups.
func NewCharacterAt(w *ecs.World, frames Frames, p CharacterPlacement, cfg Config) (ecs.Entity, error) {
	e, err := newActor(w, frames, p.Graphic, p.X, p.Y, p.Direction, cfg.CharacterSpeed, cfg.AnimationFPS)
	if err != nil {
		return 0, fmt.Errorf("character %q: %w", p.Character.ID, err)
	}
	if err := ecs.Add(w, e, component.CollidableComponent, component.Collidable{}); err != nil {
		return 0, fmt.Errorf("character %q: add collidable: %w", p.Character.ID, err)
	}
	if err := ecs.Add(w, e, component.CharacterComponent, p.Character); err != nil {
		return 0, fmt.Errorf("character %q: add character: %w", p.Character.ID, err)
	}
	return e, nil
}
