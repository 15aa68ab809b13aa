package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilequest/logger"
	"github.com/milk9111/tilequest/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the FPS overlay")
	mapName := flag.String("map", "", "starting map name (defaults to game.yaml)")
	spawn := flag.String("spawn", "", "starting spawn point on the map")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one from the clock")
	mapsDir := flag.String("maps", "", "directory with map files that override the embedded ones")
	assetsDir := flag.String("assets", "", "directory with PNG images that override the placeholders")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory with yaml specs that override the embedded ones")
	watch := flag.Bool("watch", false, "reload the active map when its file changes")
	flag.Parse()

	logger.Init(*debug)
	prefabs.Dir = *prefabsDir

	game, err := NewGame(Options{
		Map:       *mapName,
		Spawn:     *spawn,
		Seed:      *seed,
		MapsDir:   *mapsDir,
		AssetsDir: *assetsDir,
		Watch:     *watch,
		Debug:     *debug,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start")
	}

	w, h := game.LayoutF(0, 0)
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle(game.spec.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("game stopped")
	}
}
