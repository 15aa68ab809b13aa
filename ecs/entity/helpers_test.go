package entity

import (
	"math/rand/v2"

	"github.com/milk9111/tilequest/levels"
	"github.com/milk9111/tilequest/monster"
	"github.com/milk9111/tilequest/prefabs"
)

type fakeFrames struct {
	images map[string][2]float64
}

func newFakeFrames() *fakeFrames {
	return &fakeFrames{images: map[string][2]float64{
		"grass":       {64, 64},
		"sand":        {64, 64},
		"tree":        {128, 128},
		"arch":        {192, 64},
		"grass_patch": {64, 64},
	}}
}

func (f *fakeFrames) Has(key string) bool {
	_, ok := f.images[key]
	return ok
}

func (f *fakeFrames) Size(key string) (float64, float64, bool) {
	s, ok := f.images[key]
	return s[0], s[1], ok
}

func (f *fakeFrames) Animation(name string) ([]string, bool) {
	if name != "water" {
		return nil, false
	}
	return []string{"water/0", "water/1"}, true
}

func (f *fakeFrames) Coast(terrain, side string) ([]string, bool) {
	if terrain != "grass" {
		return nil, false
	}
	return []string{"coast/" + terrain + "/" + side + "/0"}, true
}

func (f *fakeFrames) Character(graphic string) (map[string][]string, bool) {
	switch graphic {
	case "player", "straw", "hat_girl":
	default:
		return nil, false
	}
	sets := map[string][]string{}
	for _, d := range []string{"down", "up", "left", "right"} {
		sets[d] = []string{graphic + "/" + d + "/0", graphic + "/" + d + "/1"}
		sets[d+"_idle"] = sets[d][:1]
	}
	return sets, true
}

func (f *fakeFrames) CharacterSize() (float64, float64) {
	return 128, 128
}

func testTable() monster.Table {
	table, err := monster.NewTable(map[string]prefabs.SpeciesSpec{
		"Jacana": {Element: "plant", Stats: map[string]float64{"max_health": 25}},
		"Cleaf":  {Element: "plant", Stats: map[string]float64{"max_health": 18}},
	})
	if err != nil {
		panic(err)
	}
	return table
}

func newTestBuilder() *Builder {
	return &Builder{
		Frames: newFakeFrames(),
		Trainers: map[string]prefabs.TrainerSpec{
			"o1": {
				Monsters:   []prefabs.PartyMemberSpec{{Species: "Jacana", Level: 14}, {Species: "Cleaf", Level: 15}},
				Dialog:     prefabs.TrainerDialogSpec{Default: []string{"Hey"}, Defeated: []string{"Bye"}},
				Directions: []string{"left", "down"},
				LookAround: true,
				Biome:      "forest",
			},
			"p1": {Dialog: prefabs.TrainerDialogSpec{Default: []string{"Hi"}}},
		},
		Monsters: testTable(),
		Rand:   rand.New(rand.NewPCG(1, 1)),
		Config: Config{PlayerSpeed: 600, CharacterSpeed: 250, AnimationFPS: 6},
	}
}

func player(pos string, x, y float64) levels.Placement {
	return levels.Placement{Kind: levels.PlacementPlayer, X: x, Y: y, Direction: "down", Pos: pos}
}

func character(id, graphic string, x, y float64) levels.Placement {
	return levels.Placement{Kind: levels.PlacementCharacter, X: x, Y: y, Direction: "left", Graphic: graphic, CharacterID: id, Radius: 400}
}
