package ecs

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilequest/ecs/component"
)

// System updates a world each frame. dt is the elapsed time in seconds.
type System interface {
	Update(w *World, dt float64)
}

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// AddComponent stores value for e under kind. Typed callers use Add.
func (w *World) AddComponent(e Entity, kind component.KindID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// GetComponent returns the stored value for e under kind.
func (w *World) GetComponent(e Entity, kind component.KindID) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if !s.Has(e.id()) {
		return nil, false
	}
	return s.Get(e.id()), true
}

// HasComponent reports whether e carries kind.
func (w *World) HasComponent(e Entity, kind component.KindID) bool {
	_, ok := w.GetComponent(e, kind)
	return ok
}

// RemoveComponent drops kind from e.
func (w *World) RemoveComponent(e Entity, kind component.KindID) bool {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e.id())
}

// Count returns how many entities carry kind.
func (w *World) Count(kind component.KindID) int {
	if w == nil || kind == nil {
		return 0
	}
	return w.store(kind.ID(), false).Len()
}

// Query returns live entities that carry every kind, ordered by their
// registration into the first kind.
func (w *World) Query(kinds ...component.KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	primary := w.store(kinds[0].ID(), false)
	out := make([]Entity, 0, primary.Len())
	for _, e := range primary.Entities() {
		if w.matches(e, kinds[1:]) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the earliest registered entity carrying every kind.
func (w *World) First(kinds ...component.KindID) (Entity, bool) {
	if w == nil || len(kinds) == 0 {
		return 0, false
	}
	for _, e := range w.store(kinds[0].ID(), false).Entities() {
		if w.matches(e, kinds[1:]) {
			return e, true
		}
	}
	return 0, false
}

func (w *World) matches(e Entity, kinds []component.KindID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, k := range kinds {
		if !w.store(k.ID(), false).Has(e.id()) {
			return false
		}
	}
	return true
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if ok {
		return s
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s = &SparseSet{}
	w.stores[id] = s
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns a copy of the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// Update runs all systems once.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

// Draw calls all render-capable systems in update order.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, s := range w.systems {
		if rs, ok := s.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
