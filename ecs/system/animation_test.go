package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

func TestAnimationFollowsFacingAndMovement(t *testing.T) {
	w := ecs.NewWorld()
	e := addActor(t, w, 0, 0, component.DirDown, 100)
	sets := map[string][]string{
		"down": {"d0", "d1"}, "down_idle": {"d0"},
		"left": {"l0", "l1"}, "left_idle": {"l0"},
		"up": {"u0", "u1"}, "up_idle": {"u0"},
	}
	must(t, ecs.Add(w, e, component.AnimationComponent, component.Animation{Sets: sets, Current: "down_idle", FPS: 4}))
	sys := NewAnimationSystem()

	sys.Update(w, 0.1)
	s, _ := ecs.Get(w, e, component.SpriteComponent)
	if s.Image != "d0" {
		t.Fatalf("idle frame = %s", s.Image)
	}

	mv, _ := ecs.Get(w, e, component.MoverComponent)
	mv.Direction = cp.Vector{X: -1}
	sys.Update(w, 0.2)
	anim, _ := ecs.Get(w, e, component.AnimationComponent)
	if anim.Current != "left" {
		t.Fatalf("state = %s, want left", anim.Current)
	}
	if s.Image != "l1" {
		t.Fatalf("frame = %s, want l1 at index %v", s.Image, anim.Index)
	}

	mv.Direction = cp.Vector{X: -1, Y: -1}
	sys.Update(w, 0)
	f, _ := ecs.Get(w, e, component.FacingComponent)
	if f.Direction != component.DirUp {
		t.Fatalf("diagonal facing = %s, want up", f.Direction)
	}

	mv.Direction = cp.Vector{}
	sys.Update(w, 0)
	if anim.Current != "up_idle" {
		t.Fatalf("state = %s, want up_idle", anim.Current)
	}
}

func TestAnimationLoopsTiles(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	must(t, ecs.Add(w, e, component.SpriteComponent, component.Sprite{Image: "water/0", W: 64, H: 64}))
	must(t, ecs.Add(w, e, component.AnimationComponent, component.Animation{
		Sets:    map[string][]string{component.DefaultAnimation: {"water/0", "water/1", "water/2"}},
		Current: component.DefaultAnimation,
		FPS:     6,
	}))
	NewAnimationSystem().Update(w, 0.75)
	s, _ := ecs.Get(w, e, component.SpriteComponent)
	// 4.5 frames into a 3 frame loop
	if s.Image != "water/1" {
		t.Fatalf("frame = %s, want water/1", s.Image)
	}
}
