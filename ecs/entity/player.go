package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// NewPlayerAt places the player with its sprite centred on x,y.
func NewPlayerAt(w *ecs.World, frames Frames, x, y float64, facing component.Direction, cfg Config) (ecs.Entity, error) {
	e, err := newActor(w, frames, playerGraphic, x, y, facing, cfg.PlayerSpeed, cfg.AnimationFPS)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent, component.Player{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	return e, nil
}

// newActor builds the parts shared by the player and characters: a centred
// animated sprite on the main layer with a facing, a mover and a hitbox that
// covers the middle half of the sprite's width.
func newActor(w *ecs.World, frames Frames, graphic string, x, y float64, facing component.Direction, speed, fps float64) (ecs.Entity, error) {
	if facing == "" {
		facing = component.DirDown
	}
	if !facing.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, facing)
	}
	sets, ok := frames.Character(graphic)
	if !ok {
		return 0, fmt.Errorf("%w: character graphic %q", ErrAssetLookup, graphic)
	}
	cw, ch := frames.CharacterSize()

	current := string(facing) + "_idle"
	first := ""
	if f := sets[current]; len(f) > 0 {
		first = f[0]
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: x - cw/2, Y: y - ch/2}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent, component.Sprite{Image: first, W: cw, H: ch}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: component.LayerMain}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AnimationComponent, component.Animation{Sets: sets, Current: current, FPS: fps}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.FacingComponent, component.Facing{Direction: facing}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.MoverComponent, component.Mover{Speed: speed}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.HitboxComponent, component.Hitbox{
		Offset: cp.BB{L: cw / 4, B: 30, R: cw - cw/4, T: ch - 30},
	}); err != nil {
		return 0, err
	}
	return e, nil
}
