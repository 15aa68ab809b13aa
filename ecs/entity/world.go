package entity

import (
	"errors"

	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

var (
	ErrBuildOrder          = errors.New("world: character placed before the player")
	ErrAssetLookup         = errors.New("world: asset not found")
	ErrMissingSpawnPoint   = errors.New("world: no player placement for spawn point")
	ErrAmbiguousSpawnPoint = errors.New("world: more than one player placement for spawn point")
	ErrUnknownTrainer      = errors.New("world: unknown trainer")
	ErrInvalidDirection    = errors.New("world: invalid facing direction")
)

// World is the active configuration: every entity of one map plus the player
// handle. It is built whole by Builder.Setup and replaced, never patched, when
// the player changes map.
type World struct {
	ECS    *ecs.World
	Map    string
	Spawn  string
	Player ecs.Entity
}

// Drawables is the all-entities group.
func (w *World) Drawables() []ecs.Entity {
	return w.ECS.Query(component.SpriteComponent)
}

// Collidables is the collision group.
func (w *World) Collidables() []ecs.Entity {
	return w.ECS.Query(component.CollidableComponent)
}

// Characters is the character group in registration order.
func (w *World) Characters() []ecs.Entity {
	return w.ECS.Query(component.CharacterComponent)
}

// Transitions is the transition-zone group.
func (w *World) Transitions() []ecs.Entity {
	return w.ECS.Query(component.TransitionZoneComponent)
}

// Encounters is the monster-encounter zone group.
func (w *World) Encounters() []ecs.Entity {
	return w.ECS.Query(component.EncounterZoneComponent)
}

// SetPlayerBlocked toggles the player's input block.
func (w *World) SetPlayerBlocked(blocked bool) {
	if m, ok := ecs.Get(w.ECS, w.Player, component.MoverComponent); ok {
		m.Blocked = blocked
		if blocked {
			m.Direction.X, m.Direction.Y = 0, 0
		}
	}
}

// PlayerBlocked reports the player's input block.
func (w *World) PlayerBlocked() bool {
	m, ok := ecs.Get(w.ECS, w.Player, component.MoverComponent)
	return ok && m.Blocked
}
