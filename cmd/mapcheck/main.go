// Command mapcheck builds every map at every spawn point without opening a
// window and reports the ones that fail.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/milk9111/tilequest/assets"
	"github.com/milk9111/tilequest/ecs/entity"
	"github.com/milk9111/tilequest/levels"
	"github.com/milk9111/tilequest/logger"
	"github.com/milk9111/tilequest/monster"
	"github.com/milk9111/tilequest/prefabs"
	"github.com/sirupsen/logrus"
)

func main() {
	mapsDir := flag.String("maps", "", "directory with map files that override the embedded ones")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.Init(*debug)

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		logger.Log.WithError(err).Fatal("load game spec")
	}
	lib, err := assets.Load("")
	if err != nil {
		logger.Log.WithError(err).Fatal("load assets")
	}
	trainers, err := prefabs.LoadTrainerSpecs()
	if err != nil {
		logger.Log.WithError(err).Fatal("load trainers")
	}
	table, err := monster.LoadTable()
	if err != nil {
		logger.Log.WithError(err).Fatal("load monsters")
	}

	b := &entity.Builder{
		Frames:   lib,
		Trainers: trainers,
		Monsters: table,
		Rand:     rand.New(rand.NewPCG(1, 1)),
		Config: entity.Config{
			PlayerSpeed:    spec.Player.Speed,
			CharacterSpeed: spec.Character.Speed,
			AnimationFPS:   spec.AnimationFPS,
		},
	}

	provider := levels.NewProvider(*mapsDir)
	failures := check(b, provider, provider.Names())
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d map(s) failed\n", failures)
		os.Exit(1)
	}
}

// check builds each named map at each of its spawn points and every
// transition target it links to. It returns the number of failures.
func check(b *entity.Builder, provider entity.MapProvider, names []string) int {
	failures := 0
	for _, name := range names {
		area, err := provider.Area(name)
		if err != nil {
			logger.Log.WithError(err).WithField("map", name).Error("parse failed")
			failures++
			continue
		}

		for _, spawn := range spawns(area) {
			w, err := b.Setup(area, spawn)
			if err != nil {
				logger.Log.WithError(err).WithFields(logrus.Fields{"map": name, "spawn": spawn}).Error("build failed")
				failures++
				continue
			}
			logger.Log.WithFields(logrus.Fields{
				"map":        name,
				"spawn":      spawn,
				"entities":   w.ECS.EntityCount(),
				"characters": len(w.Characters()),
			}).Info("ok")
		}

		for _, t := range area.Transitions {
			if _, err := b.Load(provider, t.Target, t.Spawn); err != nil {
				logger.Log.WithError(err).WithFields(logrus.Fields{"map": name, "target": t.Target, "spawn": t.Spawn}).Error("broken transition")
				failures++
			}
		}
	}
	return failures
}

func spawns(area *levels.Area) []string {
	seen := make(map[string]struct{})
	for _, p := range area.Entities {
		if p.Kind == levels.PlacementPlayer {
			seen[p.Pos] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
