package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// Overlaps reports whether a and b share interior area. Boxes that only touch
// along an edge do not overlap, so an entity pushed flush against a wall can
// still slide along it.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && a.R > b.L && a.B < b.T && a.T > b.B
}

// Grow expands bb by d on every side.
func Grow(bb cp.BB, d float64) cp.BB {
	return cp.BB{L: bb.L - d, B: bb.B - d, R: bb.R + d, T: bb.T + d}
}

func centerOf(bb cp.BB) cp.Vector {
	return cp.Vector{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2}
}

// HitboxOf returns e's hitbox in world coordinates.
func HitboxOf(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return cp.BB{}, false
	}
	h, ok := ecs.Get(w, e, component.HitboxComponent)
	if !ok {
		return cp.BB{}, false
	}
	return h.World(*t), true
}

// Center returns the centre of e's sprite rectangle, or of its hitbox when it
// has no sprite.
func Center(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return cp.Vector{}, false
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent); ok {
		return cp.Vector{X: t.X + s.W/2, Y: t.Y + s.H/2}, true
	}
	if bb, ok := HitboxOf(w, e); ok {
		return centerOf(bb), true
	}
	return t.Pos(), true
}

// SegmentHits reports whether the segment a-b passes through the interior of
// bb (Liang-Barsky clipping).
func SegmentHits(a, b cp.Vector, bb cp.BB) bool {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q > 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}
	if !clip(-d.X, a.X-bb.L) || !clip(d.X, bb.R-a.X) || !clip(-d.Y, a.Y-bb.B) || !clip(d.Y, bb.T-a.Y) {
		return false
	}
	return t0 < t1
}

// FacingToward picks the direction from one point to another. Targets within
// 30px vertically count as level and resolve to left or right.
func FacingToward(from, to cp.Vector) component.Direction {
	rel := to.Sub(from)
	if math.Abs(rel.Y) < 30 {
		if rel.X > 0 {
			return component.DirRight
		}
		return component.DirLeft
	}
	if rel.Y > 0 {
		return component.DirDown
	}
	return component.DirUp
}

// FaceToward turns e to look at target.
func FaceToward(w *ecs.World, e ecs.Entity, target cp.Vector) {
	c, ok := Center(w, e)
	if !ok {
		return
	}
	if f, ok := ecs.Get(w, e, component.FacingComponent); ok {
		f.Direction = FacingToward(c, target)
	}
}

// InRange reports whether target is closer than radius to observer and lies
// in the observer's facing direction, within tolerance of its line of sight.
func InRange(w *ecs.World, radius, tolerance float64, observer, target ecs.Entity) bool {
	from, ok := Center(w, observer)
	if !ok {
		return false
	}
	to, ok := Center(w, target)
	if !ok {
		return false
	}
	facing, ok := ecs.Get(w, observer, component.FacingComponent)
	if !ok {
		return false
	}

	rel := to.Sub(from)
	if rel.Length() >= radius {
		return false
	}
	switch facing.Direction {
	case component.DirLeft:
		return rel.X < 0 && math.Abs(rel.Y) < tolerance
	case component.DirRight:
		return rel.X > 0 && math.Abs(rel.Y) < tolerance
	case component.DirUp:
		return rel.Y < 0 && math.Abs(rel.X) < tolerance
	case component.DirDown:
		return rel.Y > 0 && math.Abs(rel.X) < tolerance
	}
	return false
}

// LineOfSight reports whether no collidable other than a and b crosses the
// segment between their centres.
func LineOfSight(w *ecs.World, a, b ecs.Entity) bool {
	from, ok := Center(w, a)
	if !ok {
		return false
	}
	to, ok := Center(w, b)
	if !ok {
		return false
	}
	for _, e := range w.Query(component.CollidableComponent) {
		if e == a || e == b {
			continue
		}
		bb, ok := HitboxOf(w, e)
		if !ok {
			continue
		}
		if SegmentHits(from, to, bb) {
			return false
		}
	}
	return true
}
