package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilequest/assets"
	"github.com/milk9111/tilequest/dialog"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
	"github.com/milk9111/tilequest/ecs/entity"
	"github.com/milk9111/tilequest/ecs/system"
	"github.com/milk9111/tilequest/input"
	"github.com/milk9111/tilequest/levels"
	"github.com/milk9111/tilequest/monster"
	"github.com/milk9111/tilequest/prefabs"
	"github.com/milk9111/tilequest/transition"
)

const mapA = `{
	"width": 12, "height": 12,
	"object_layers": {
		"Transition": [{"x": 400, "y": 300, "width": 64, "height": 40, "properties": {"target": "mapB", "pos": "spawn2"}}],
		"Entities": [
			{"name": "Player", "x": 320, "y": 320, "properties": {"pos": "start", "direction": "down"}},
			{"name": "Character", "x": 320, "y": 400, "properties": {"graphic": "hat_girl", "direction": "left", "character_id": "p1"}}
		]
	}
}`

const mapB = `{
	"width": 12, "height": 12,
	"object_layers": {
		"Transition": [{"x": 700, "y": 700, "width": 64, "height": 40, "properties": {"target": "mapA", "pos": "start"}}],
		"Entities": [
			{"name": "Player", "x": 500, "y": 500, "properties": {"pos": "other", "direction": "down"}},
			{"name": "Player", "x": 200, "y": 200, "properties": {"pos": "spawn2", "direction": "up"}}
		]
	}
}`

const mapBroken = `{
	"width": 12, "height": 12,
	"object_layers": {
		"Transition": [{"x": 400, "y": 300, "width": 64, "height": 40, "properties": {"target": "nowhere", "pos": "start"}}],
		"Entities": [{"name": "Player", "x": 320, "y": 320, "properties": {"pos": "start", "direction": "right"}}]
	}
}`

const mapWatch = `{
	"width": 20, "height": 12,
	"object_layers": {
		"Entities": [
			{"name": "Player", "x": 320, "y": 320, "properties": {"pos": "start", "direction": "right"}},
			{"name": "Character", "x": 600, "y": 320, "properties": {"graphic": "straw", "direction": "left", "character_id": "o1", "radius": 400}}
		]
	}
}`

const mapTwoZones = `{
	"width": 12, "height": 12,
	"object_layers": {
		"Transition": [
			{"x": 400, "y": 300, "width": 64, "height": 40, "properties": {"target": "mapB", "pos": "spawn2"}},
			{"x": 100, "y": 100, "width": 64, "height": 40, "properties": {"target": "mapB", "pos": "other"}}
		],
		"Entities": [{"name": "Player", "x": 320, "y": 320, "properties": {"pos": "start", "direction": "right"}}]
	}
}`

const mapCrowd = `{
	"width": 12, "height": 12,
	"object_layers": {
		"Entities": [
			{"name": "Player", "x": 320, "y": 320, "properties": {"pos": "start", "direction": "down"}},
			{"name": "Character", "x": 320, "y": 400, "properties": {"graphic": "hat_girl", "direction": "up", "character_id": "p1"}},
			{"name": "Character", "x": 340, "y": 390, "properties": {"graphic": "straw", "direction": "up", "character_id": "p2"}}
		]
	}
}`

type memMaps map[string]*levels.Area

func (m memMaps) Area(name string) (*levels.Area, error) {
	a, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", levels.ErrUnknownMap, name)
	}
	return a, nil
}

func newTestGame(t *testing.T, start string) *Game {
	t.Helper()
	maps := memMaps{}
	for name, src := range map[string]string{"mapA": mapA, "mapB": mapB, "broken": mapBroken, "watch": mapWatch, "crowd": mapCrowd, "twozones": mapTwoZones} {
		a, err := levels.Parse(name, []byte(src))
		if err != nil {
			t.Fatalf("Parse %s: %v", name, err)
		}
		maps[name] = a
	}
	return newTestGameFrom(t, maps, start)
}

func newTestGameFrom(t *testing.T, maps entity.MapProvider, start string) *Game {
	t.Helper()

	lib, err := assets.Load("")
	if err != nil {
		t.Fatalf("assets.Load: %v", err)
	}
	table, err := monster.NewTable(map[string]prefabs.SpeciesSpec{
		"Jacana": {Element: "plant", Stats: map[string]float64{"max_health": 25}},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	trainers := map[string]prefabs.TrainerSpec{
		"p1": {Dialog: prefabs.TrainerDialogSpec{Default: []string{"Hi", "Bye"}}},
		"p2": {Dialog: prefabs.TrainerDialogSpec{Default: []string{"Hello", "Again", "Later"}}},
		"o1": {
			Monsters:   []prefabs.PartyMemberSpec{{Species: "Jacana", Level: 3}},
			Dialog:     prefabs.TrainerDialogSpec{Default: []string{"Spotted you"}},
			Directions: []string{"left"},
			LookAround: true,
		},
	}

	spec := prefabs.DefaultGameSpec()
	g, err := newGame(spec, newBuilder(spec, lib, trainers, table, 42), maps, lib, &input.Script{}, start, "start")
	if err != nil {
		t.Fatalf("newGame: %v", err)
	}
	return g
}

func TestTransitionSwapsWorld(t *testing.T) {
	g := newTestGame(t, "mapA")

	armed := false
	for i := 0; i < 20 && !armed; i++ {
		if err := g.step(0.1, input.State{MoveX: 1}); err != nil {
			t.Fatalf("step: %v", err)
		}
		_, armed = g.fader.Pending()
	}
	if !armed {
		t.Fatal("walking into the zone should start a transition")
	}
	if !g.world.PlayerBlocked() {
		t.Fatal("player should be blocked while the screen fades")
	}

	for i := 0; i < 20; i++ {
		if m, _ := g.Current(); m == "mapB" {
			break
		}
		if err := g.step(0.1, input.State{MoveX: 1}); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if m, s := g.Current(); m != "mapB" || s != "spawn2" {
		t.Fatalf("current = %s/%s, want mapB/spawn2", m, s)
	}
	if c, _ := system.Center(g.world.ECS, g.world.Player); c.X != 200 || c.Y != 200 {
		t.Fatalf("player centre = %v, want spawn2 at 200,200", c)
	}
	if !g.world.PlayerBlocked() {
		t.Fatal("player should stay blocked until the fade clears")
	}
	if g.dialog != nil {
		t.Fatal("no dialog should be open")
	}

	for i := 0; i < 20 && !g.fader.Settled(); i++ {
		if err := g.step(0.1, input.State{}); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if !g.fader.Settled() || g.world.PlayerBlocked() {
		t.Fatalf("after fade: settled=%v blocked=%v", g.fader.Settled(), g.world.PlayerBlocked())
	}
}

func TestInteractionDialogCycle(t *testing.T) {
	g := newTestGame(t, "mapA")
	char := g.world.Characters()[0]

	if err := g.step(0.016, input.State{Interact: true}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if g.dialog == nil || g.dialog.Line() != "Hi" {
		t.Fatal("dialog should be open on the first line")
	}
	if !g.world.PlayerBlocked() {
		t.Fatal("player should be blocked during dialog")
	}
	f, _ := ecs.Get(g.world.ECS, char, component.FacingComponent)
	if f.Direction != component.DirUp {
		t.Fatalf("character faces %s, want up toward the player", f.Direction)
	}

	steps := []input.State{{Interact: true}, {Interact: true}}
	for _, st := range steps {
		if err := g.step(0.6, st); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if !g.dialog.Done() {
		t.Fatal("dialog should be finished")
	}

	if err := g.step(0.016, input.State{}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if g.dialog != nil {
		t.Fatal("session should be cleared after Ended")
	}
	if g.world.PlayerBlocked() {
		t.Fatal("player should be free after the dialog")
	}
	c, _ := ecs.Get(g.world.ECS, char, component.CharacterComponent)
	if !c.Defeated || !c.CanRotate {
		t.Fatalf("character after dialog = %+v", c)
	}
}

func TestSpottingTrainerOpensOneDialog(t *testing.T) {
	g := newTestGame(t, "watch")
	opened := 0
	var last *dialog.Session
	for i := 0; i < 100; i++ {
		if err := g.step(0.05, input.State{}); err != nil {
			t.Fatalf("step: %v", err)
		}
		if g.dialog != nil && g.dialog != last {
			opened++
			last = g.dialog
		}
	}
	if opened != 1 {
		t.Fatalf("dialogs opened = %d, want 1", opened)
	}
	c, _ := ecs.Get(g.world.ECS, g.world.Characters()[0], component.CharacterComponent)
	if !c.HasMoved {
		t.Fatal("trainer should have walked up to the player")
	}
}

func TestQuitTerminates(t *testing.T) {
	g := newTestGame(t, "mapA")
	if err := g.step(0.016, input.State{Quit: true}); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected ebiten.Termination, got %v", err)
	}
}

func TestFailedTransitionIsFatal(t *testing.T) {
	g := newTestGame(t, "broken")
	var err error
	for i := 0; i < 40 && err == nil; i++ {
		err = g.step(0.1, input.State{MoveX: 1})
	}
	if !errors.Is(err, levels.ErrUnknownMap) {
		t.Fatalf("expected ErrUnknownMap, got %v", err)
	}
	if m, _ := g.Current(); m != "broken" {
		t.Fatalf("world should be kept, got %s", m)
	}
}

func TestReloadKeepsWorldOnFailure(t *testing.T) {
	g := newTestGame(t, "mapA")
	before := g.world

	g.reloads = func() []string { return []string{"mapA"} }
	g.maps = memMaps{}
	if err := g.step(0.016, input.State{}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if g.world != before {
		t.Fatal("failed reload should keep the current world")
	}

	g.maps = memMaps{"mapA": mustParse(t, "mapA", mapA)}
	if err := g.step(0.016, input.State{}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if g.world == before {
		t.Fatal("reload should install a new world")
	}
	if m, s := g.Current(); m != "mapA" || s != "start" {
		t.Fatalf("current = %s/%s", m, s)
	}
}

func mustParse(t *testing.T, name, src string) *levels.Area {
	t.Helper()
	a, err := levels.Parse(name, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestTransitionTargetFixedOnceArmed(t *testing.T) {
	g := newTestGame(t, "twozones")

	var armed bool
	var target transition.Target
	for i := 0; i < 20 && !armed; i++ {
		if err := g.step(0.1, input.State{MoveX: 1}); err != nil {
			t.Fatalf("step: %v", err)
		}
		target, armed = g.fader.Pending()
	}
	if !armed || target.Spawn != "spawn2" {
		t.Fatalf("pending = %+v armed=%v, want mapB/spawn2", target, armed)
	}

	// Put the player inside the second zone while the screen darkens.
	tr, _ := ecs.Get(g.world.ECS, g.world.Player, component.TransformComponent)
	hb, _ := ecs.Get(g.world.ECS, g.world.Player, component.HitboxComponent)
	tr.X = 132 - (hb.Offset.L+hb.Offset.R)/2
	tr.Y = 120 - (hb.Offset.B+hb.Offset.T)/2
	if _, ok := system.TransitionTarget(g.world.ECS, g.world.Player); !ok {
		t.Fatal("player should overlap the second zone")
	}

	for i := 0; i < 20; i++ {
		if m, _ := g.Current(); m == "mapB" {
			break
		}
		if got, ok := g.fader.Pending(); ok && got != target {
			t.Fatalf("pending target changed to %+v", got)
		}
		if err := g.step(0.1, input.State{}); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if m, s := g.Current(); m != "mapB" || s != "spawn2" {
		t.Fatalf("current = %s/%s, want mapB/spawn2", m, s)
	}
}

func TestRepeatedPressesKeepOneDialog(t *testing.T) {
	g := newTestGame(t, "crowd")

	if err := g.step(0.016, input.State{Interact: true}); err != nil {
		t.Fatalf("step: %v", err)
	}
	first := g.dialog
	if first == nil {
		t.Fatal("a dialog should open with two characters in reach")
	}
	line := first.Line()

	for i := 0; i < 10; i++ {
		if err := g.step(0.016, input.State{Interact: true}); err != nil {
			t.Fatalf("step: %v", err)
		}
		if g.dialog != first {
			t.Fatalf("press %d replaced the session", i)
		}
	}
	if first.Line() != line {
		t.Fatalf("line = %q, presses inside the delay should not advance", first.Line())
	}

	for _, e := range g.world.Characters() {
		if e == first.Character() {
			continue
		}
		c, _ := ecs.Get(g.world.ECS, e, component.CharacterComponent)
		if !c.CanRotate || c.Defeated {
			t.Fatalf("second character was touched: %+v", c)
		}
	}

	for i := 0; i < 10 && !first.Done(); i++ {
		if err := g.step(0.6, input.State{Interact: true}); err != nil {
			t.Fatalf("step: %v", err)
		}
		if g.dialog != nil && g.dialog != first {
			t.Fatal("a second session opened before the first ended")
		}
	}
	if !first.Done() {
		t.Fatal("dialog should finish")
	}
}

func TestWatchReadsEditedMapFromDisk(t *testing.T) {
	if got := (Options{Watch: true}).mapsDir(); got != defaultMapsDir {
		t.Fatalf("watch without -maps reads %q, want %q", got, defaultMapsDir)
	}
	if got := (Options{}).mapsDir(); got != "" {
		t.Fatalf("no watch reads %q, want embedded only", got)
	}
	if got := (Options{Watch: true, MapsDir: "custom"}).mapsDir(); got != "custom" {
		t.Fatalf("explicit -maps = %q", got)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "mapA.json")
	if err := os.WriteFile(path, []byte(mapA), 0o644); err != nil {
		t.Fatal(err)
	}
	g := newTestGameFrom(t, levels.NewProvider(dir), "mapA")
	if c, _ := system.Center(g.world.ECS, g.world.Player); c.X != 320 {
		t.Fatalf("player centre = %v before the edit", c)
	}

	edited := strings.Replace(mapA, `"x": 320, "y": 320`, `"x": 200, "y": 320`, 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}
	g.reloads = func() []string { return []string{"mapA"} }
	if err := g.step(0.016, input.State{}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c, _ := system.Center(g.world.ECS, g.world.Player); c.X != 200 {
		t.Fatalf("player centre = %v, reload should read the edited file", c)
	}
}
