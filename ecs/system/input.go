package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// InputSystem copies the polled movement axes onto every player-controlled
// entity. The scheduler sets the axes before the world updates.
type InputSystem struct {
	moveX, moveY float64
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Set records the movement axes for the next update. Each axis is -1, 0 or 1.
func (i *InputSystem) Set(moveX, moveY float64) {
	i.moveX, i.moveY = moveX, moveY
}

func (i *InputSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.InputComponent, component.MoverComponent, func(e ecs.Entity, in *component.Input, mv *component.Mover) {
		in.MoveX, in.MoveY = i.moveX, i.moveY
		if mv.Blocked {
			mv.Direction = cp.Vector{}
			return
		}
		dir := cp.Vector{X: in.MoveX, Y: in.MoveY}
		if dir.X != 0 || dir.Y != 0 {
			dir = dir.Normalize()
		}
		mv.Direction = dir
	})
}
