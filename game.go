package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/tilequest/assets"
	"github.com/milk9111/tilequest/dialog"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
	"github.com/milk9111/tilequest/ecs/entity"
	"github.com/milk9111/tilequest/ecs/system"
	"github.com/milk9111/tilequest/input"
	"github.com/milk9111/tilequest/levels"
	"github.com/milk9111/tilequest/logger"
	"github.com/milk9111/tilequest/monster"
	"github.com/milk9111/tilequest/prefabs"
	"github.com/milk9111/tilequest/transition"
	"github.com/sirupsen/logrus"
)

const (
	noticeImage    = "notice"
	defaultMapsDir = "levels"
)

// Options are the command line settings NewGame needs.
type Options struct {
	Map       string
	Spawn     string
	Seed      uint64
	MapsDir   string
	AssetsDir string
	Watch     bool
	Debug     bool
}

// Game is the frame scheduler. It owns the active world and swaps it whole
// when the player changes map.
type Game struct {
	spec    *prefabs.GameSpec
	builder *entity.Builder
	maps    entity.MapProvider
	images  system.ImageSource
	input   input.Source
	reloads func() []string
	debug   bool

	world  *entity.World
	moves  *system.InputSystem
	dialog *dialog.Session
	ended  chan dialog.Ended
	fader  *transition.Fader

	// arriving is set while the player of a freshly built world waits for
	// the fade-out to finish.
	arriving bool
	biome    string

	now     func() time.Time
	last    time.Time
	overlay *ebiten.Image
}

// NewGame loads configuration, assets and the starting map.
func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	if opts.Map == "" {
		opts.Map = spec.Start.Map
	}
	if opts.Spawn == "" {
		opts.Spawn = spec.Start.Spawn
	}

	lib, err := assets.Load(opts.AssetsDir)
	if err != nil {
		return nil, err
	}
	trainers, err := prefabs.LoadTrainerSpecs()
	if err != nil {
		return nil, err
	}
	table, err := monster.LoadTable()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	builder := newBuilder(spec, lib, trainers, table, seed)

	mapsDir := opts.mapsDir()
	g, err := newGame(spec, builder, levels.NewProvider(mapsDir), lib, input.NewKeyboard(), opts.Map, opts.Spawn)
	if err != nil {
		return nil, err
	}
	g.debug = opts.Debug

	if opts.Watch {
		watcher, err := levels.NewWatcher(mapsDir)
		if err != nil {
			logger.Log.WithError(err).Warn("map watcher disabled")
		} else {
			g.reloads = watcher.Poll
		}
	}

	logger.Log.WithFields(logrus.Fields{"map": opts.Map, "spawn": opts.Spawn, "seed": seed}).Info("game started")
	return g, nil
}

// mapsDir is where maps are read from disk. Watching without -maps follows the
// checked-in levels directory, and the provider has to read the same files.
func (o Options) mapsDir() string {
	if o.MapsDir == "" && o.Watch {
		return defaultMapsDir
	}
	return o.MapsDir
}

func newBuilder(spec *prefabs.GameSpec, frames entity.Frames, trainers map[string]prefabs.TrainerSpec, table monster.Table, seed uint64) *entity.Builder {
	return &entity.Builder{
		Frames:   frames,
		Trainers: trainers,
		Monsters: table,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Config: entity.Config{
			PlayerSpeed:    spec.Player.Speed,
			CharacterSpeed: spec.Character.Speed,
			AnimationFPS:   spec.AnimationFPS,
		},
	}
}

func newGame(spec *prefabs.GameSpec, builder *entity.Builder, maps entity.MapProvider, images system.ImageSource, src input.Source, mapName, spawn string) (*Game, error) {
	g := &Game{
		spec:    spec,
		builder: builder,
		maps:    maps,
		images:  images,
		input:   src,
		ended:   make(chan dialog.Ended, 1),
		fader:   transition.NewFader(spec.Transition.Speed),
		now:     time.Now,
	}
	world, err := builder.Load(maps, mapName, spawn)
	if err != nil {
		return nil, fmt.Errorf("game: load %s/%s: %w", mapName, spawn, err)
	}
	g.install(world)
	g.last = g.now()
	return g, nil
}

// install makes w the active world and gives it a fresh system set in the
// fixed update order.
func (g *Game) install(w *entity.World) {
	g.moves = system.NewInputSystem()
	w.ECS.AddSystem(g.moves)
	w.ECS.AddSystem(system.NewCharacterSystem(g.builder.Rand, g.spec.Character.LookInterval, g.spec.Character.NoticeDelay, g.spec.Interaction.Tolerance))
	w.ECS.AddSystem(system.NewMovementSystem())
	w.ECS.AddSystem(system.NewAnimationSystem())
	w.ECS.AddSystem(system.NewRenderSystem(g.images, noticeImage))
	g.world = w
	g.biome = ""
}

func (g *Game) Update() error {
	now := g.now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	return g.step(dt, g.input.Poll())
}

// step runs one frame. Any error it returns ends the game.
func (g *Game) step(dt float64, in input.State) error {
	if in.Quit {
		logger.Log.Info("quit requested")
		return ebiten.Termination
	}

	g.drainEnded()
	g.drainReloads()

	opened := false
	if in.Interact && g.dialog == nil && !g.world.PlayerBlocked() {
		if e, ok := system.Interact(g.world.ECS, g.world.Player, g.spec.Interaction.Radius, g.spec.Interaction.Tolerance); ok {
			opened = g.openDialog(e)
		}
	}

	if _, pending := g.fader.Pending(); !pending && !g.arriving {
		if zone, ok := system.TransitionTarget(g.world.ECS, g.world.Player); ok {
			if g.fader.Arm(transition.Target{Map: zone.TargetMap, Spawn: zone.TargetSpawn}) {
				g.world.SetPlayerBlocked(true)
				logger.Log.WithFields(logrus.Fields{
					"from":  g.world.Map,
					"map":   zone.TargetMap,
					"spawn": zone.TargetSpawn,
				}).Info("transition started")
			}
		}
	}

	g.moves.Set(in.MoveX, in.MoveY)
	g.world.ECS.Update(dt)

	for _, ev := range g.world.ECS.Events().Drain() {
		if ev.Type != ecs.EventDialogRequest || g.dialog != nil {
			continue
		}
		if e, ok := ev.Data.(ecs.Entity); ok {
			opened = g.openDialog(e) || opened
		}
	}

	if g.dialog != nil && !opened {
		g.dialog.Update(dt, in.Interact)
	}

	if target, done := g.fader.Update(dt); done {
		if err := g.arrive(target); err != nil {
			return err
		}
	}
	if g.arriving && g.fader.Settled() {
		g.arriving = false
		g.world.SetPlayerBlocked(false)
	}

	g.trackBiome()
	return nil
}

func (g *Game) openDialog(e ecs.Entity) bool {
	s, err := dialog.Open(g.world.ECS, e, g.spec.Dialog.AdvanceDelay, g.ended)
	if err != nil {
		logger.Log.WithError(err).Warn("dialog not opened")
		if c, ok := ecs.Get(g.world.ECS, e, component.CharacterComponent); ok {
			c.CanRotate = true
		}
		g.world.SetPlayerBlocked(false)
		return false
	}
	g.dialog = s
	g.world.SetPlayerBlocked(true)
	return true
}

func (g *Game) drainEnded() {
	for {
		select {
		case msg := <-g.ended:
			if g.dialog != nil && g.dialog.Character() == msg.Character {
				g.dialog = nil
			}
			if !g.arriving {
				g.world.SetPlayerBlocked(false)
			}
		default:
			return
		}
	}
}

// drainReloads rebuilds the active map when its file changes on disk. A map
// that fails to build is logged and the current world kept.
func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	for _, name := range g.reloads() {
		if name != g.world.Map {
			continue
		}
		if g.dialog != nil || !g.fader.Settled() {
			logger.Log.WithField("map", name).Warn("reload skipped while busy")
			continue
		}
		w, err := g.builder.Load(g.maps, name, g.world.Spawn)
		if err != nil {
			logger.Log.WithError(err).WithField("map", name).Error("reload failed")
			continue
		}
		g.install(w)
		logger.Log.WithField("map", name).Info("map reloaded")
	}
}

// arrive builds the target map once the screen is black. Failing to build a
// map the player walked into is fatal.
func (g *Game) arrive(target transition.Target) error {
	w, err := g.builder.Load(g.maps, target.Map, target.Spawn)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"map": target.Map, "spawn": target.Spawn}).Error("transition failed")
		return fmt.Errorf("game: transition to %s/%s: %w", target.Map, target.Spawn, err)
	}
	g.dialog = nil
	for len(g.ended) > 0 {
		<-g.ended
	}
	g.install(w)
	g.world.SetPlayerBlocked(true)
	g.arriving = true
	logger.Log.WithFields(logrus.Fields{"map": target.Map, "spawn": target.Spawn}).Info("map entered")
	return nil
}

func (g *Game) trackBiome() {
	biome, _ := system.EncounterAt(g.world.ECS, g.world.Player)
	if biome == g.biome {
		return
	}
	g.biome = biome
	if biome != "" {
		logger.Log.WithFields(logrus.Fields{"map": g.world.Map, "biome": biome}).Debug("entered encounter zone")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.world.ECS.Draw(screen)

	if g.dialog != nil {
		g.dialog.Draw(screen)
	}

	if alpha := g.fader.Alpha(); alpha > 0 {
		b := screen.Bounds()
		if g.overlay == nil || g.overlay.Bounds() != b {
			g.overlay = ebiten.NewImage(b.Dx(), b.Dy())
			g.overlay.Fill(color.Black)
		}
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(g.overlay, op)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  map: %s  spawn: %s  entities: %d",
			ebiten.ActualFPS(), g.world.Map, g.world.Spawn, g.world.ECS.EntityCount()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.spec.Window.Width), float64(g.spec.Window.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Current reports the active map and spawn.
func (g *Game) Current() (string, string) {
	return g.world.Map, g.world.Spawn
}
