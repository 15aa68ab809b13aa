package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownMap      = errors.New("levels: unknown map")
	ErrMissingProperty = errors.New("levels: missing property")
	ErrInvalidMap      = errors.New("levels: invalid map")
)

// Layer names, in build order.
const (
	LayerTerrain     = "Terrain"
	LayerTerrainTop  = "Terrain Top"
	LayerWater       = "Water"
	LayerCoast       = "Coast"
	LayerObjects     = "Objects"
	LayerTransition  = "Transition"
	LayerCollisions  = "Collisions"
	LayerMonsters    = "Monsters"
	LayerEntities    = "Entities"
	OverlayName      = "top"
	PlayerEntityName = "Player"
)

// Rect is a pixel rectangle with its top-left corner at X,Y.
type Rect struct {
	X, Y, W, H float64
}

// Tile is one cell of a tile layer, positioned in pixels.
type Tile struct {
	X, Y  float64
	Image string
}

type Coast struct {
	X, Y    float64
	Terrain string
	Side    string
}

// Prop is an entry of the Objects layer. Props named OverlayName draw above
// everything and never collide.
type Prop struct {
	Rect
	Name  string
	Image string
}

func (p Prop) Overlay() bool {
	return p.Name == OverlayName
}

type Transition struct {
	Rect
	Target string
	Spawn  string
}

type Patch struct {
	Rect
	Biome string
	Image string
}

type PlacementKind int

const (
	PlacementPlayer PlacementKind = iota
	PlacementCharacter
)

// Placement is an entry of the Entities layer.
type Placement struct {
	Kind      PlacementKind
	X, Y      float64
	Direction string

	// Player only.
	Pos string

	// Character only.
	Graphic     string
	CharacterID string
	Radius      float64
}

// Area is one named map with its layers decoded into typed entries.
type Area struct {
	Name     string
	TileSize int
	Width    int
	Height   int

	Terrain     []Tile
	TerrainTop  []Tile
	Water       []Rect
	Coast       []Coast
	Objects     []Prop
	Transitions []Transition
	Collisions  []Rect
	Monsters    []Patch
	Entities    []Placement
}

// PixelSize returns the map size in pixels.
func (a *Area) PixelSize() (float64, float64) {
	return float64(a.Width * a.TileSize), float64(a.Height * a.TileSize)
}

type fileFormat struct {
	Name         string                  `json:"name"`
	TileSize     int                     `json:"tile_size"`
	Width        int                     `json:"width"`
	Height       int                     `json:"height"`
	TileLayers   map[string]tileLayer    `json:"tile_layers"`
	ObjectLayers map[string][]fileObject `json:"object_layers"`
}

type tileLayer struct {
	Legend map[string]string `json:"legend"`
	Rows   []string          `json:"rows"`
}

type fileObject struct {
	Name       string         `json:"name,omitempty"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width,omitempty"`
	Height     float64        `json:"height,omitempty"`
	Image      string         `json:"image,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Parse decodes a map file and validates every layer entry.
func Parse(name string, data []byte) (*Area, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if f.Name == "" {
		f.Name = name
	}
	if f.TileSize <= 0 {
		f.TileSize = 64
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: %s: size %dx%d", ErrInvalidMap, name, f.Width, f.Height)
	}

	a := &Area{Name: f.Name, TileSize: f.TileSize, Width: f.Width, Height: f.Height}

	var err error
	if a.Terrain, err = f.tiles(LayerTerrain); err != nil {
		return nil, err
	}
	if a.TerrainTop, err = f.tiles(LayerTerrainTop); err != nil {
		return nil, err
	}

	for i, o := range f.ObjectLayers[LayerWater] {
		if o.Width <= 0 || o.Height <= 0 {
			return nil, fmt.Errorf("%w: %s/%s[%d]: empty region", ErrInvalidMap, name, LayerWater, i)
		}
		a.Water = append(a.Water, o.rect())
	}

	for i, o := range f.ObjectLayers[LayerCoast] {
		c := Coast{X: o.X, Y: o.Y}
		if c.Terrain, err = o.str(name, LayerCoast, i, "terrain"); err != nil {
			return nil, err
		}
		if c.Side, err = o.str(name, LayerCoast, i, "side"); err != nil {
			return nil, err
		}
		a.Coast = append(a.Coast, c)
	}

	for i, o := range f.ObjectLayers[LayerObjects] {
		if o.Image == "" {
			return nil, missing(name, LayerObjects, i, "image")
		}
		a.Objects = append(a.Objects, Prop{Rect: o.rect(), Name: o.Name, Image: o.Image})
	}

	for i, o := range f.ObjectLayers[LayerTransition] {
		t := Transition{Rect: o.rect()}
		if t.Target, err = o.str(name, LayerTransition, i, "target"); err != nil {
			return nil, err
		}
		if t.Spawn, err = o.str(name, LayerTransition, i, "pos"); err != nil {
			return nil, err
		}
		a.Transitions = append(a.Transitions, t)
	}

	for _, o := range f.ObjectLayers[LayerCollisions] {
		a.Collisions = append(a.Collisions, o.rect())
	}

	for i, o := range f.ObjectLayers[LayerMonsters] {
		p := Patch{Rect: o.rect(), Image: o.Image}
		if p.Biome, err = o.str(name, LayerMonsters, i, "biome"); err != nil {
			return nil, err
		}
		a.Monsters = append(a.Monsters, p)
	}

	for i, o := range f.ObjectLayers[LayerEntities] {
		p, err := o.placement(name, i)
		if err != nil {
			return nil, err
		}
		a.Entities = append(a.Entities, p)
	}

	return a, nil
}

func (f *fileFormat) tiles(layer string) ([]Tile, error) {
	tl, ok := f.TileLayers[layer]
	if !ok {
		return nil, nil
	}
	if len(tl.Rows) > f.Height {
		return nil, fmt.Errorf("%w: %s/%s: %d rows for height %d", ErrInvalidMap, f.Name, layer, len(tl.Rows), f.Height)
	}
	var out []Tile
	size := float64(f.TileSize)
	for y, row := range tl.Rows {
		runes := []rune(row)
		if len(runes) > f.Width {
			return nil, fmt.Errorf("%w: %s/%s: row %d is wider than %d", ErrInvalidMap, f.Name, layer, y, f.Width)
		}
		for x, r := range runes {
			if r == '.' || r == ' ' {
				continue
			}
			img, ok := tl.Legend[string(r)]
			if !ok {
				return nil, fmt.Errorf("%w: %s/%s: rune %q at %d,%d has no legend entry", ErrInvalidMap, f.Name, layer, r, x, y)
			}
			out = append(out, Tile{X: float64(x) * size, Y: float64(y) * size, Image: img})
		}
	}
	return out, nil
}

func (o fileObject) rect() Rect {
	return Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

func (o fileObject) placement(mapName string, i int) (Placement, error) {
	p := Placement{X: o.X, Y: o.Y}
	var err error
	if p.Direction, err = o.str(mapName, LayerEntities, i, "direction"); err != nil {
		return p, err
	}

	if o.Name == PlayerEntityName {
		p.Kind = PlacementPlayer
		p.Pos, err = o.str(mapName, LayerEntities, i, "pos")
		return p, err
	}

	p.Kind = PlacementCharacter
	if p.Graphic, err = o.str(mapName, LayerEntities, i, "graphic"); err != nil {
		return p, err
	}
	if p.CharacterID, err = o.str(mapName, LayerEntities, i, "character_id"); err != nil {
		return p, err
	}
	if p.Radius, err = o.num(mapName, LayerEntities, i, "radius"); err != nil {
		return p, err
	}
	return p, nil
}

func (o fileObject) str(mapName, layer string, i int, key string) (string, error) {
	v, ok := o.Properties[key]
	if !ok {
		return "", missing(mapName, layer, i, key)
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return "", missing(mapName, layer, i, key)
		}
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: %s/%s[%d]: %q is %T, want string", ErrInvalidMap, mapName, layer, i, key, v)
}

// num reads an optional numeric property; absent means 0.
func (o fileObject) num(mapName, layer string, i int, key string) (float64, error) {
	v, ok := o.Properties[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s/%s[%d]: %q: %v", ErrInvalidMap, mapName, layer, i, key, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s/%s[%d]: %q is %T, want number", ErrInvalidMap, mapName, layer, i, key, v)
}

func missing(mapName, layer string, i int, key string) error {
	return fmt.Errorf("%w: %s/%s[%d]: %q", ErrMissingProperty, mapName, layer, i, key)
}
