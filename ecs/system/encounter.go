package system

import (
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// EncounterAt returns the biome of the first encounter zone the player's
// hitbox overlaps.
func EncounterAt(w *ecs.World, player ecs.Entity) (string, bool) {
	hb, ok := HitboxOf(w, player)
	if !ok {
		return "", false
	}
	for _, e := range w.Query(component.EncounterZoneComponent) {
		z, ok := ecs.Get(w, e, component.EncounterZoneComponent)
		if ok && Overlaps(z.Bounds, hb) {
			return z.Biome, true
		}
	}
	return "", false
}
