package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

func TestMovementStopsAtWalls(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 0, 0, component.DirRight)
	addWall(t, w, 40, -200, 20, 400)

	mv, _ := ecs.Get(w, player, component.MoverComponent)
	mv.Direction = cp.Vector{X: 1}
	NewMovementSystem().Update(w, 0.1)

	hb, _ := HitboxOf(w, player)
	if hb.R != 40 {
		t.Fatalf("hitbox right = %v, want flush with wall at 40", hb.R)
	}
}

func TestMovementSlidesAlongWalls(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 0, 0, component.DirRight)
	addWall(t, w, 32, -200, 20, 400)

	mv, _ := ecs.Get(w, player, component.MoverComponent)
	mv.Direction = cp.Vector{X: 1, Y: 1}.Normalize()
	before, _ := ecs.Get(w, player, component.TransformComponent)
	x0, y0 := before.X, before.Y

	NewMovementSystem().Update(w, 0.1)

	after, _ := ecs.Get(w, player, component.TransformComponent)
	if after.X != x0 {
		t.Fatalf("x moved from %v to %v through a wall", x0, after.X)
	}
	if after.Y <= y0 {
		t.Fatalf("y = %v, expected to slide down from %v", after.Y, y0)
	}
}

func TestMovementIgnoresBlocked(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 0, 0, component.DirRight)
	mv, _ := ecs.Get(w, player, component.MoverComponent)
	mv.Direction = cp.Vector{X: 1}
	mv.Blocked = true

	NewMovementSystem().Update(w, 1)

	tr, _ := ecs.Get(w, player, component.TransformComponent)
	if tr.X != -64 || tr.Y != -64 {
		t.Fatalf("blocked player moved to %v,%v", tr.X, tr.Y)
	}
}

func TestInputSystemNormalizesAndRespectsBlock(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, 0, 0, component.DirRight)
	in := NewInputSystem()

	in.Set(1, 1)
	in.Update(w, 0)
	mv, _ := ecs.Get(w, player, component.MoverComponent)
	if l := mv.Direction.Length(); l < 0.999 || l > 1.001 {
		t.Fatalf("direction length = %v, want 1", l)
	}

	mv.Blocked = true
	in.Update(w, 0)
	if mv.Moving() {
		t.Fatal("blocked player should not get a direction")
	}
}

func TestMovementStopsCharactersAtObstacles(t *testing.T) {
	cases := []struct {
		name     string
		obstacle func(t *testing.T, w *ecs.World)
		wantL    float64
	}{
		{"wall", func(t *testing.T, w *ecs.World) { addWall(t, w, 100, -200, 20, 400) }, 120},
		{"other_character", func(t *testing.T, w *ecs.World) {
			addCharacter(t, w, 100, 0, component.DirRight, component.Character{ID: "other"})
		}, 132},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			char := addCharacter(t, w, 300, 0, component.DirLeft, component.Character{ID: "walker"})
			tc.obstacle(t, w)

			mv, _ := ecs.Get(w, char, component.MoverComponent)
			mv.Direction = cp.Vector{X: -1}
			sys := NewMovementSystem()
			sys.Update(w, 0.64)

			hb, _ := HitboxOf(w, char)
			if hb.L != tc.wantL {
				t.Fatalf("hitbox left = %v, want flush at %v", hb.L, tc.wantL)
			}
			if mv.Stalled {
				t.Fatal("first step made progress and should not stall")
			}

			sys.Update(w, 0.1)
			if !mv.Stalled {
				t.Fatal("walking into the obstacle again should stall")
			}
		})
	}
}
