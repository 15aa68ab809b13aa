package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
)

// ImageSource resolves sprite image keys.
type ImageSource interface {
	Image(key string) *ebiten.Image
}

// RenderSystem draws every sprite layer by layer with the camera centred on
// the player, then the notice marker above a spotted player.
type RenderSystem struct {
	Images      ImageSource
	NoticeImage string
}

func NewRenderSystem(images ImageSource, noticeImage string) *RenderSystem {
	return &RenderSystem{Images: images, NoticeImage: noticeImage}
}

// Update is a no-op; the system only draws.
func (r *RenderSystem) Update(*ecs.World, float64) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || r.Images == nil {
		return
	}

	bounds := screen.Bounds()
	offset := Camera(w, float64(bounds.Dx()), float64(bounds.Dy()))

	for _, e := range DrawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, component.SpriteComponent)
		r.blit(screen, s.Image, t.X+offset.X, t.Y+offset.Y, s.W, s.H)
	}

	player, ok := w.First(component.PlayerComponent)
	if !ok {
		return
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent)
	if !ok || !p.Noticed || r.NoticeImage == "" {
		return
	}
	img := r.Images.Image(r.NoticeImage)
	t, okT := ecs.Get(w, player, component.TransformComponent)
	s, okS := ecs.Get(w, player, component.SpriteComponent)
	if img == nil || !okT || !okS {
		return
	}
	nb := img.Bounds()
	x := t.X + s.W/2 - float64(nb.Dx())/2
	y := t.Y - float64(nb.Dy())
	r.blit(screen, r.NoticeImage, x+offset.X, y+offset.Y, float64(nb.Dx()), float64(nb.Dy()))
}

func (r *RenderSystem) blit(screen *ebiten.Image, key string, x, y, width, height float64) {
	img := r.Images.Image(key)
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	if b.Dx() > 0 && b.Dy() > 0 && width > 0 && height > 0 {
		op.GeoM.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	}
	op.GeoM.Translate(x, y)
	screen.DrawImage(img, op)
}

// Camera returns the translation that puts the player's centre in the middle
// of a screen of the given size.
func Camera(w *ecs.World, screenW, screenH float64) cp.Vector {
	player, ok := w.First(component.PlayerComponent)
	if !ok {
		return cp.Vector{}
	}
	c, ok := Center(w, player)
	if !ok {
		return cp.Vector{}
	}
	return cp.Vector{X: screenW/2 - c.X, Y: screenH/2 - c.Y}
}

// DrawOrder lists drawable entities in paint order: by layer, then main-layer
// sprites by bottom edge plus their y-sort offset. Ties keep registration
// order.
func DrawOrder(w *ecs.World) []ecs.Entity {
	type item struct {
		e     ecs.Entity
		layer int
		y     float64
	}
	items := make([]item, 0, w.Count(component.SpriteComponent))
	for _, e := range w.Query(component.SpriteComponent, component.TransformComponent) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		s, _ := ecs.Get(w, e, component.SpriteComponent)
		it := item{e: e, layer: component.LayerMain}
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent); ok {
			it.layer = l.Index
			if l.Index == component.LayerMain {
				it.y = t.Y + s.H + l.YSortOffset
			}
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer != items[j].layer {
			return items[i].layer < items[j].layer
		}
		return items[i].y < items[j].y
	})

	out := make([]ecs.Entity, len(items))
	for i, it := range items {
		out[i] = it.e
	}
	return out
}
