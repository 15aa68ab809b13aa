package assets

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var assetsFS embed.FS

type ImageSpec struct {
	W     int    `yaml:"w"`
	H     int    `yaml:"h"`
	Color string `yaml:"color"`
}

type AnimationSpec struct {
	Frames int    `yaml:"frames"`
	W      int    `yaml:"w"`
	H      int    `yaml:"h"`
	Color  string `yaml:"color"`
}

type CoastSpec struct {
	Frames   int               `yaml:"frames"`
	Sides    []string          `yaml:"sides"`
	Terrains map[string]string `yaml:"terrains"`
}

type CharacterSpec struct {
	W        int               `yaml:"w"`
	H        int               `yaml:"h"`
	Frames   int               `yaml:"frames"`
	Graphics map[string]string `yaml:"graphics"`
}

// Manifest lists every image key the game knows about.
type Manifest struct {
	Images     map[string]ImageSpec     `yaml:"images"`
	Animations map[string]AnimationSpec `yaml:"animations"`
	Coast      CoastSpec                `yaml:"coast"`
	Characters CharacterSpec            `yaml:"characters"`
}

// LoadManifest reads the embedded manifest.yaml.
func LoadManifest() (*Manifest, error) {
	b, err := assetsFS.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	return &m, nil
}
