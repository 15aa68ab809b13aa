package system

import (
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// TransitionTarget returns the first transition zone the player's hitbox
// overlaps.
func TransitionTarget(w *ecs.World, player ecs.Entity) (component.TransitionZone, bool) {
	hb, ok := HitboxOf(w, player)
	if !ok {
		return component.TransitionZone{}, false
	}
	for _, e := range w.Query(component.TransitionZoneComponent) {
		zone, ok := ecs.Get(w, e, component.TransitionZoneComponent)
		if !ok {
			continue
		}
		if Overlaps(zone.Bounds, hb) {
			return *zone, true
		}
	}
	return component.TransitionZone{}, false
}
