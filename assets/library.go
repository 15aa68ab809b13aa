package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilequest/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

var characterDirections = []string{"down", "up", "left", "right"}

type imageSpec struct {
	w, h  int
	color color.RGBA
	frame int
	// facing is set for character frames; the placeholder draws a nub on that side.
	facing string
}

// Library resolves image keys to frames. Key tables are built eagerly from the
// manifest; the *ebiten.Image behind a key is created on first use, so lookups
// work without a graphics context.
type Library struct {
	dir        string
	specs      map[string]imageSpec
	animations map[string][]string
	coast      map[string]map[string][]string
	characters map[string]map[string][]string
	charW      float64
	charH      float64
	images     map[string]*ebiten.Image
}

// Load reads the embedded manifest. dir, when not empty, is searched for
// <key>.png overrides.
func Load(dir string) (*Library, error) {
	m, err := LoadManifest()
	if err != nil {
		return nil, err
	}
	return NewLibrary(m, dir), nil
}

func NewLibrary(m *Manifest, dir string) *Library {
	l := &Library{
		dir:        dir,
		specs:      make(map[string]imageSpec),
		animations: make(map[string][]string),
		coast:      make(map[string]map[string][]string),
		characters: make(map[string]map[string][]string),
		charW:      float64(m.Characters.W),
		charH:      float64(m.Characters.H),
		images:     make(map[string]*ebiten.Image),
	}

	for key, s := range m.Images {
		l.specs[key] = imageSpec{w: s.W, h: s.H, color: namedColor(s.Color)}
	}

	for name, s := range m.Animations {
		frames := make([]string, 0, s.Frames)
		for i := 0; i < s.Frames; i++ {
			key := fmt.Sprintf("%s/%d", name, i)
			l.specs[key] = imageSpec{w: s.W, h: s.H, color: namedColor(s.Color), frame: i}
			frames = append(frames, key)
		}
		l.animations[name] = frames
	}

	for terrain, col := range m.Coast.Terrains {
		sides := make(map[string][]string, len(m.Coast.Sides))
		for _, side := range m.Coast.Sides {
			frames := make([]string, 0, m.Coast.Frames)
			for i := 0; i < m.Coast.Frames; i++ {
				key := fmt.Sprintf("coast/%s/%s/%d", terrain, side, i)
				l.specs[key] = imageSpec{w: 64, h: 64, color: namedColor(col), frame: i}
				frames = append(frames, key)
			}
			sides[side] = frames
		}
		l.coast[terrain] = sides
	}

	for graphic, col := range m.Characters.Graphics {
		sets := make(map[string][]string, len(characterDirections)*2)
		for _, dir := range characterDirections {
			frames := make([]string, 0, m.Characters.Frames)
			for i := 0; i < m.Characters.Frames; i++ {
				key := fmt.Sprintf("characters/%s/%s/%d", graphic, dir, i)
				l.specs[key] = imageSpec{
					w:      m.Characters.W,
					h:      m.Characters.H,
					color:  namedColor(col),
					frame:  i,
					facing: dir,
				}
				frames = append(frames, key)
			}
			sets[dir] = frames
			if len(frames) > 0 {
				sets[dir+"_idle"] = frames[:1]
			}
		}
		l.characters[graphic] = sets
	}

	return l
}

// Has reports whether key names a known image.
func (l *Library) Has(key string) bool {
	_, ok := l.specs[key]
	return ok
}

// Size returns the pixel size of key.
func (l *Library) Size(key string) (float64, float64, bool) {
	s, ok := l.specs[key]
	if !ok {
		return 0, 0, false
	}
	return float64(s.w), float64(s.h), true
}

// Animation returns the frame keys of a named looping animation (e.g. water).
func (l *Library) Animation(name string) ([]string, bool) {
	frames, ok := l.animations[name]
	return frames, ok && len(frames) > 0
}

// Coast returns the frames for a coast piece of terrain on side.
func (l *Library) Coast(terrain, side string) ([]string, bool) {
	sides, ok := l.coast[terrain]
	if !ok {
		return nil, false
	}
	frames, ok := sides[side]
	return frames, ok && len(frames) > 0
}

// Character returns the walk/idle frame sets of a character graphic, keyed by
// "<direction>" and "<direction>_idle".
func (l *Library) Character(graphic string) (map[string][]string, bool) {
	sets, ok := l.characters[graphic]
	return sets, ok
}

// CharacterSize is the size of every character frame.
func (l *Library) CharacterSize() (float64, float64) {
	return l.charW, l.charH
}

// Image returns the image for key, creating it on first use. Unknown keys
// return nil.
func (l *Library) Image(key string) *ebiten.Image {
	if img, ok := l.images[key]; ok {
		return img
	}
	spec, ok := l.specs[key]
	if !ok {
		return nil
	}
	img := l.loadFromDisk(key)
	if img == nil {
		img = placeholder(spec)
	}
	l.images[key] = img
	return img
}

// loadFromDisk returns the PNG override for key, or nil when there is none or
// it cannot be decoded.
func (l *Library) loadFromDisk(key string) *ebiten.Image {
	if l.dir == "" {
		return nil
	}
	path := filepath.Join(l.dir, filepath.FromSlash(key)+".png")
	b, err := os.ReadFile(path)
	if err != nil {
		logger.Log.WithError(err).WithField("image", key).Debug("no image override")
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{"image": key, "path": path}).Warn("bad image override, using placeholder")
		return nil
	}
	return ebiten.NewImageFromImage(img)
}

func placeholder(s imageSpec) *ebiten.Image {
	w, h := max(s.w, 1), max(s.h, 1)
	img := ebiten.NewImage(w, h)
	base := shade(s.color, 1-0.08*float64(s.frame%4))

	if s.facing == "" {
		img.Fill(base)
		return img
	}

	// Character frames: a body in the middle and a nub on the facing side.
	body := image.Rect(w/4, h/8, w-w/4, h-h/16)
	bob := (s.frame % 2) * 4
	body = body.Add(image.Pt(0, -bob))
	fill(img, body, base)

	nub := w / 8
	cx, cy := (body.Min.X+body.Max.X)/2, (body.Min.Y+body.Max.Y)/2
	var r image.Rectangle
	switch s.facing {
	case "down":
		r = image.Rect(cx-nub, body.Max.Y-nub*2, cx+nub, body.Max.Y)
	case "up":
		r = image.Rect(cx-nub, body.Min.Y, cx+nub, body.Min.Y+nub*2)
	case "left":
		r = image.Rect(body.Min.X, cy-nub, body.Min.X+nub*2, cy+nub)
	case "right":
		r = image.Rect(body.Max.X-nub*2, cy-nub, body.Max.X, cy+nub)
	}
	fill(img, r, colornames.White)
	return img
}

func fill(img *ebiten.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	if sub, ok := img.SubImage(r).(*ebiten.Image); ok {
		sub.Fill(c)
	}
}

func namedColor(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Magenta
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
