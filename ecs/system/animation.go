package system

import (
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances every animation by FPS*dt and copies the current frame
// onto the sprite. Entities with a facing pick their frame set from it:
// "<dir>" while walking and "<dir>_idle" otherwise.
func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.AnimationComponent, component.SpriteComponent, func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		if f, ok := ecs.Get(w, e, component.FacingComponent); ok {
			moving := false
			if mv, ok := ecs.Get(w, e, component.MoverComponent); ok && !mv.Blocked && mv.Moving() {
				moving = true
				f.Direction = directionOf(mv.Direction.X, mv.Direction.Y, f.Direction)
			}
			state := string(f.Direction)
			if !moving {
				state += "_idle"
			}
			if _, ok := anim.Sets[state]; ok {
				anim.Current = state
			}
		}

		anim.Index += anim.FPS * dt
		if n := len(anim.Sets[anim.Current]); n > 0 && anim.Index >= float64(n) {
			anim.Index -= float64(n) * float64(int(anim.Index/float64(n)))
		}
		if frame := anim.Frame(); frame != "" {
			sprite.Image = frame
		}
	})
}

// directionOf maps a movement vector to a facing. Vertical movement wins on
// diagonals.
func directionOf(x, y float64, current component.Direction) component.Direction {
	dir := current
	if x > 0 {
		dir = component.DirRight
	} else if x < 0 {
		dir = component.DirLeft
	}
	if y > 0 {
		dir = component.DirDown
	} else if y < 0 {
		dir = component.DirUp
	}
	return dir
}
