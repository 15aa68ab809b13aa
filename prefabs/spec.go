package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type WindowSpec struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type StartSpec struct {
	Map   string `yaml:"map"`
	Spawn string `yaml:"spawn"`
}

type TransitionSpec struct {
	// Speed is the fade progress gained or lost per second, on a 0..255 scale.
	Speed float64 `yaml:"speed"`
}

type InteractionSpec struct {
	Radius    float64 `yaml:"radius"`
	Tolerance float64 `yaml:"tolerance"`
}

type PlayerSpec struct {
	Speed float64 `yaml:"speed"`
}

type CharacterSpec struct {
	Speed        float64 `yaml:"speed"`
	NoticeDelay  float64 `yaml:"notice_delay"`
	LookInterval float64 `yaml:"look_interval"`
}

type DialogSpec struct {
	AdvanceDelay float64 `yaml:"advance_delay"`
}

// GameSpec is the top-level tuning file, game.yaml.
type GameSpec struct {
	Window       WindowSpec      `yaml:"window"`
	TileSize     int             `yaml:"tile_size"`
	Start        StartSpec       `yaml:"start"`
	Transition   TransitionSpec  `yaml:"transition"`
	Interaction  InteractionSpec `yaml:"interaction"`
	Player       PlayerSpec      `yaml:"player"`
	Character    CharacterSpec   `yaml:"character"`
	AnimationFPS float64         `yaml:"animation_fps"`
	Dialog       DialogSpec      `yaml:"dialog"`
}

// LoadGameSpec loads game.yaml and fills in defaults for zero fields.
func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

// DefaultGameSpec returns a spec with every field at its default.
func DefaultGameSpec() *GameSpec {
	s := &GameSpec{}
	s.applyDefaults()
	return s
}

func (s *GameSpec) applyDefaults() {
	if s.Window.Width <= 0 {
		s.Window.Width = 1280
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 720
	}
	if s.TileSize <= 0 {
		s.TileSize = 64
	}
	if s.Transition.Speed <= 0 {
		s.Transition.Speed = 600
	}
	if s.Interaction.Radius <= 0 {
		s.Interaction.Radius = 100
	}
	if s.Interaction.Tolerance <= 0 {
		s.Interaction.Tolerance = 30
	}
	if s.Player.Speed <= 0 {
		s.Player.Speed = 250
	}
	if s.Character.Speed <= 0 {
		s.Character.Speed = 250
	}
	if s.Character.NoticeDelay <= 0 {
		s.Character.NoticeDelay = 0.5
	}
	if s.Character.LookInterval <= 0 {
		s.Character.LookInterval = 1.5
	}
	if s.AnimationFPS <= 0 {
		s.AnimationFPS = 6
	}
	if s.Dialog.AdvanceDelay <= 0 {
		s.Dialog.AdvanceDelay = 0.5
	}
}

// SpeciesSpec is one entry of monsters.yaml.
type SpeciesSpec struct {
	Element string             `yaml:"element"`
	Stats   map[string]float64 `yaml:"stats"`
}

func LoadSpeciesSpecs() (map[string]SpeciesSpec, error) {
	return LoadSpec[map[string]SpeciesSpec]("monsters.yaml")
}

type PartyMemberSpec struct {
	Species string `yaml:"species"`
	Level   int    `yaml:"level"`
}

type TrainerDialogSpec struct {
	Default  []string `yaml:"default"`
	Defeated []string `yaml:"defeated"`
}

// TrainerSpec is one entry of trainers.yaml, keyed by character id.
type TrainerSpec struct {
	Monsters   []PartyMemberSpec `yaml:"monsters"`
	Dialog     TrainerDialogSpec `yaml:"dialog"`
	Directions []string          `yaml:"directions"`
	LookAround bool              `yaml:"look_around"`
	Defeated   bool              `yaml:"defeated"`
	Biome      string            `yaml:"biome"`
}

func LoadTrainerSpecs() (map[string]TrainerSpec, error) {
	return LoadSpec[map[string]TrainerSpec]("trainers.yaml")
}
