package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// addActor places a 128x128 actor centred on x,y with the standard actor
// hitbox.
func addActor(t *testing.T, w *ecs.World, x, y float64, facing component.Direction, speed float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x - 64, Y: y - 64}))
	must(t, ecs.Add(w, e, component.SpriteComponent, component.Sprite{Image: "actor", W: 128, H: 128}))
	must(t, ecs.Add(w, e, component.RenderLayerComponent, component.RenderLayer{Index: component.LayerMain}))
	must(t, ecs.Add(w, e, component.FacingComponent, component.Facing{Direction: facing}))
	must(t, ecs.Add(w, e, component.MoverComponent, component.Mover{Speed: speed}))
	must(t, ecs.Add(w, e, component.HitboxComponent, component.Hitbox{Offset: cp.BB{L: 32, B: 30, R: 96, T: 98}}))
	return e
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64, facing component.Direction) ecs.Entity {
	t.Helper()
	e := addActor(t, w, x, y, facing, 600)
	must(t, ecs.Add(w, e, component.InputComponent, component.Input{}))
	must(t, ecs.Add(w, e, component.PlayerComponent, component.Player{}))
	return e
}

func addCharacter(t *testing.T, w *ecs.World, x, y float64, facing component.Direction, c component.Character) ecs.Entity {
	t.Helper()
	e := addActor(t, w, x, y, facing, 250)
	must(t, ecs.Add(w, e, component.CollidableComponent, component.Collidable{}))
	must(t, ecs.Add(w, e, component.CharacterComponent, c))
	return e
}

func addWall(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y}))
	must(t, ecs.Add(w, e, component.HitboxComponent, component.Hitbox{Offset: cp.BB{R: width, T: height}}))
	must(t, ecs.Add(w, e, component.CollidableComponent, component.Collidable{}))
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
