package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
	"github.com/milk9111/tilequest/levels"
	"github.com/milk9111/tilequest/logger"
	"github.com/milk9111/tilequest/monster"
	"github.com/milk9111/tilequest/prefabs"
	"github.com/sirupsen/logrus"
)

// Frames resolves the image keys a map refers to.
type Frames interface {
	Has(key string) bool
	Size(key string) (float64, float64, bool)
	Animation(name string) ([]string, bool)
	Coast(terrain, side string) ([]string, bool)
	Character(graphic string) (map[string][]string, bool)
	CharacterSize() (float64, float64)
}

// MapProvider supplies map areas by name.
type MapProvider interface {
	Area(name string) (*levels.Area, error)
}

const (
	waterAnimation = "water"
	playerGraphic  = "player"
)

type Config struct {
	PlayerSpeed    float64
	CharacterSpeed float64
	AnimationFPS   float64
}

// Builder turns map areas into worlds.
type Builder struct {
	Frames   Frames
	Trainers map[string]prefabs.TrainerSpec
	Monsters monster.Table
	Rand     *rand.Rand
	Config   Config
}

// Load fetches name from maps and builds it.
func (b *Builder) Load(maps MapProvider, name, spawn string) (*World, error) {
	area, err := maps.Area(name)
	if err != nil {
		return nil, err
	}
	return b.Setup(area, spawn)
}

// Setup builds a new world from area with the player placed at spawn. Layers
// are traversed in a fixed order so registration order, and therefore draw and
// group iteration order, is deterministic. On error the partial world is
// discarded.
func (b *Builder) Setup(area *levels.Area, spawn string) (*World, error) {
	if area == nil {
		return nil, fmt.Errorf("world: setup: nil area")
	}
	s := &setup{
		Builder: b,
		area:    area,
		world:   &World{ECS: ecs.NewWorld(), Map: area.Name, Spawn: spawn},
		tile:    float64(area.TileSize),
	}

	steps := []struct {
		layer string
		fn    func() error
	}{
		{levels.LayerTerrain, func() error { return s.tiles(area.Terrain) }},
		{levels.LayerTerrainTop, func() error { return s.tiles(area.TerrainTop) }},
		{levels.LayerWater, s.water},
		{levels.LayerCoast, s.coast},
		{levels.LayerObjects, s.objects},
		{levels.LayerTransition, s.transitions},
		{levels.LayerCollisions, s.collisions},
		{levels.LayerMonsters, s.monsters},
		{levels.LayerEntities, s.entities},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("world: setup %s/%s: %w", area.Name, step.layer, err)
		}
	}

	if !s.world.Player.Valid() {
		return nil, fmt.Errorf("world: setup %s: %w: %q", area.Name, ErrMissingSpawnPoint, spawn)
	}

	logger.Log.WithFields(logrus.Fields{
		"map":        area.Name,
		"spawn":      spawn,
		"entities":   s.world.ECS.EntityCount(),
		"characters": s.world.ECS.Count(component.CharacterComponent),
	}).Debug("world built")

	return s.world, nil
}

type setup struct {
	*Builder
	area  *levels.Area
	world *World
	tile  float64
}

func (s *setup) tiles(tiles []levels.Tile) error {
	for _, t := range tiles {
		if !s.Frames.Has(t.Image) {
			return fmt.Errorf("%w: tile image %q", ErrAssetLookup, t.Image)
		}
		if _, err := s.static(t.X, t.Y, s.tile, s.tile, t.Image, component.RenderLayer{Index: component.LayerBackground}); err != nil {
			return err
		}
	}
	return nil
}

// water expands each region into tile-sized animated cells. Any remainder
// smaller than a tile is dropped.
func (s *setup) water() error {
	if len(s.area.Water) == 0 {
		return nil
	}
	frames, ok := s.Frames.Animation(waterAnimation)
	if !ok {
		return fmt.Errorf("%w: animation %q", ErrAssetLookup, waterAnimation)
	}
	for _, r := range s.area.Water {
		cols := int(r.W / s.tile)
		rows := int(r.H / s.tile)
		for i := 0; i < cols; i++ {
			for j := 0; j < rows; j++ {
				x := r.X + float64(i)*s.tile
				y := r.Y + float64(j)*s.tile
				if _, err := s.animated(x, y, s.tile, s.tile, frames, component.RenderLayer{Index: component.LayerWater}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *setup) coast() error {
	for _, c := range s.area.Coast {
		frames, ok := s.Frames.Coast(c.Terrain, c.Side)
		if !ok {
			return fmt.Errorf("%w: coast %s/%s", ErrAssetLookup, c.Terrain, c.Side)
		}
		if _, err := s.animated(c.X, c.Y, s.tile, s.tile, frames, component.RenderLayer{Index: component.LayerBackground}); err != nil {
			return err
		}
	}
	return nil
}

func (s *setup) objects() error {
	for _, o := range s.area.Objects {
		if !s.Frames.Has(o.Image) {
			return fmt.Errorf("%w: object image %q", ErrAssetLookup, o.Image)
		}
		w, h := s.size(o.Rect, o.Image)
		if o.Overlay() {
			if _, err := s.static(o.X, o.Y, w, h, o.Image, component.RenderLayer{Index: component.LayerTop}); err != nil {
				return err
			}
			continue
		}
		e, err := s.static(o.X, o.Y, w, h, o.Image, component.RenderLayer{Index: component.LayerMain})
		if err != nil {
			return err
		}
		// Only the middle 40% of an object's height blocks movement, so the
		// player can walk behind the top and in front of the base.
		hitbox := component.Hitbox{Offset: cp.BB{L: 0, B: h * 0.3, R: w, T: h * 0.7}}
		if err := s.collidable(e, hitbox); err != nil {
			return err
		}
	}
	return nil
}

func (s *setup) transitions() error {
	for _, t := range s.area.Transitions {
		e := s.world.ECS.CreateEntity()
		if err := ecs.Add(s.world.ECS, e, component.TransitionZoneComponent, component.TransitionZone{
			Bounds:      rectBB(t.Rect),
			TargetMap:   t.Target,
			TargetSpawn: t.Spawn,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *setup) collisions() error {
	for _, r := range s.area.Collisions {
		e := s.world.ECS.CreateEntity()
		if err := ecs.Add(s.world.ECS, e, component.TransformComponent, component.Transform{X: r.X, Y: r.Y}); err != nil {
			return err
		}
		if err := s.collidable(e, component.Hitbox{Offset: cp.BB{R: r.W, T: r.H}}); err != nil {
			return err
		}
	}
	return nil
}

// monsters registers encounter zones. A patch with an image also gets a
// separate decorative sprite; the zone itself is never drawn.
func (s *setup) monsters() error {
	for _, p := range s.area.Monsters {
		e := s.world.ECS.CreateEntity()
		if err := ecs.Add(s.world.ECS, e, component.EncounterZoneComponent, component.EncounterZone{
			Bounds: rectBB(p.Rect),
			Biome:  p.Biome,
		}); err != nil {
			return err
		}
		if p.Image == "" {
			continue
		}
		if !s.Frames.Has(p.Image) {
			return fmt.Errorf("%w: patch image %q", ErrAssetLookup, p.Image)
		}
		layer := component.RenderLayer{Index: component.LayerMain, YSortOffset: -40}
		if p.Biome == "sand" {
			layer = component.RenderLayer{Index: component.LayerBackground}
		}
		w, h := s.size(p.Rect, p.Image)
		if _, err := s.static(p.X, p.Y, w, h, p.Image, layer); err != nil {
			return err
		}
	}
	return nil
}

func (s *setup) entities() error {
	for _, p := range s.area.Entities {
		switch p.Kind {
		case levels.PlacementPlayer:
			if p.Pos != s.world.Spawn {
				continue
			}
			if s.world.Player.Valid() {
				return fmt.Errorf("%w: %q", ErrAmbiguousSpawnPoint, p.Pos)
			}
			player, err := NewPlayerAt(s.world.ECS, s.Frames, p.X, p.Y, component.Direction(p.Direction), s.Config)
			if err != nil {
				return err
			}
			s.world.Player = player
		case levels.PlacementCharacter:
			if !s.world.Player.Valid() {
				return fmt.Errorf("%w: %q at %v,%v", ErrBuildOrder, p.CharacterID, p.X, p.Y)
			}
			if _, err := s.character(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *setup) character(p levels.Placement) (ecs.Entity, error) {
	trainer, ok := s.Trainers[p.CharacterID]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrainer, p.CharacterID)
	}

	party := make([]*monster.Monster, 0, len(trainer.Monsters))
	for _, m := range trainer.Monsters {
		mon, err := monster.New(s.Monsters, m.Species, m.Level, s.Rand)
		if err != nil {
			return 0, fmt.Errorf("character %q: %w", p.CharacterID, err)
		}
		party = append(party, mon)
	}

	dirs := make([]component.Direction, 0, len(trainer.Directions))
	for _, d := range trainer.Directions {
		dir := component.Direction(d)
		if !dir.Valid() {
			return 0, fmt.Errorf("%w: trainer %q: %q", ErrInvalidDirection, p.CharacterID, d)
		}
		dirs = append(dirs, dir)
	}

	return NewCharacterAt(s.world.ECS, s.Frames, CharacterPlacement{
		X:         p.X,
		Y:         p.Y,
		Graphic:   p.Graphic,
		Direction: component.Direction(p.Direction),
		Character: component.Character{
			ID:         p.CharacterID,
			Radius:     p.Radius,
			LookAround: trainer.LookAround,
			Directions: dirs,
			Dialog: component.DialogLines{
				Default:  trainer.Dialog.Default,
				Defeated: trainer.Dialog.Defeated,
			},
			Defeated:  trainer.Defeated,
			Biome:     trainer.Biome,
			Party:     party,
			CanRotate: true,
		},
	}, s.Config)
}

func (s *setup) size(r levels.Rect, image string) (float64, float64) {
	if r.W > 0 && r.H > 0 {
		return r.W, r.H
	}
	if w, h, ok := s.Frames.Size(image); ok {
		return w, h
	}
	return s.tile, s.tile
}

func (s *setup) static(x, y, w, h float64, image string, layer component.RenderLayer) (ecs.Entity, error) {
	e := s.world.ECS.CreateEntity()
	if err := ecs.Add(s.world.ECS, e, component.TransformComponent, component.Transform{X: x, Y: y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.world.ECS, e, component.SpriteComponent, component.Sprite{Image: image, W: w, H: h}); err != nil {
		return 0, err
	}
	if err := ecs.Add(s.world.ECS, e, component.RenderLayerComponent, layer); err != nil {
		return 0, err
	}
	return e, nil
}

func (s *setup) animated(x, y, w, h float64, frames []string, layer component.RenderLayer) (ecs.Entity, error) {
	e, err := s.static(x, y, w, h, frames[0], layer)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(s.world.ECS, e, component.AnimationComponent, component.Animation{
		Sets:    map[string][]string{component.DefaultAnimation: frames},
		Current: component.DefaultAnimation,
		FPS:     s.Config.AnimationFPS,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func (s *setup) collidable(e ecs.Entity, hitbox component.Hitbox) error {
	if err := ecs.Add(s.world.ECS, e, component.HitboxComponent, hitbox); err != nil {
		return err
	}
	return ecs.Add(s.world.ECS, e, component.CollidableComponent, component.Collidable{})
}

func rectBB(r levels.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}
