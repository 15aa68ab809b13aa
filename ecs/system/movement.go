package system

import (
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Update moves every unblocked mover, resolving collisions one axis at a
// time so walking diagonally into a wall slides along it.
func (m *MovementSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.TransformComponent, component.MoverComponent, func(e ecs.Entity, t *component.Transform, mv *component.Mover) {
		if mv.Blocked || !mv.Moving() {
			mv.Stalled = false
			return
		}
		dx := mv.Direction.X * mv.Speed * dt
		dy := mv.Direction.Y * mv.Speed * dt
		x0, y0 := t.X, t.Y

		t.X += dx
		m.resolve(w, e, t, dx, 0)
		t.Y += dy
		m.resolve(w, e, t, 0, dy)

		mv.Stalled = t.X == x0 && t.Y == y0
	})
}

// resolve pushes e back out of any collidable it entered while moving by
// dx,dy, leaving its hitbox flush against the obstacle.
func (m *MovementSystem) resolve(w *ecs.World, e ecs.Entity, t *component.Transform, dx, dy float64) {
	hb, ok := ecs.Get(w, e, component.HitboxComponent)
	if !ok {
		return
	}
	for _, other := range w.Query(component.CollidableComponent) {
		if other == e {
			continue
		}
		obstacle, ok := HitboxOf(w, other)
		if !ok {
			continue
		}
		box := hb.World(*t)
		if !Overlaps(box, obstacle) {
			continue
		}
		switch {
		case dx > 0:
			t.X = obstacle.L - hb.Offset.R
		case dx < 0:
			t.X = obstacle.R - hb.Offset.L
		case dy > 0:
			t.Y = obstacle.B - hb.Offset.T
		case dy < 0:
			t.Y = obstacle.T - hb.Offset.B
		}
	}
}
