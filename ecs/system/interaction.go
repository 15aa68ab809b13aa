package system

import (
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// Interact looks for the first character, in registration order, that the
// player is facing within radius. On a hit the player is blocked, the
// character turns toward the player and stops rotating until its dialog ends.
func Interact(w *ecs.World, player ecs.Entity, radius, tolerance float64) (ecs.Entity, bool) {
	for _, e := range w.Query(component.CharacterComponent) {
		if !InRange(w, radius, tolerance, player, e) {
			continue
		}
		if mv, ok := ecs.Get(w, player, component.MoverComponent); ok {
			mv.Blocked = true
			mv.Direction.X, mv.Direction.Y = 0, 0
		}
		if pc, ok := Center(w, player); ok {
			FaceToward(w, e, pc)
		}
		if c, ok := ecs.Get(w, e, component.CharacterComponent); ok {
			c.CanRotate = false
		}
		return e, true
	}
	return 0, false
}
