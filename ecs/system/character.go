package system

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
	"github.com/milk9111/tilequest/logger"
	"github.com/sirupsen/logrus"
)

// approachReach is how far, in total, a walking character's hitbox is grown
// when testing whether it has reached the player.
const approachReach = 10

// CharacterSystem runs trainer behaviour: looking around, spotting the player
// and walking up to start a dialog.
type CharacterSystem struct {
	Rand         *rand.Rand
	LookInterval float64
	NoticeDelay  float64
	Tolerance    float64
}

func NewCharacterSystem(rng *rand.Rand, lookInterval, noticeDelay, tolerance float64) *CharacterSystem {
	return &CharacterSystem{
		Rand:         rng,
		LookInterval: lookInterval,
		NoticeDelay:  noticeDelay,
		Tolerance:    tolerance,
	}
}

func (s *CharacterSystem) Update(w *ecs.World, dt float64) {
	player, ok := w.First(component.PlayerComponent)
	if !ok {
		return
	}

	ecs.ForEach(w, component.CharacterComponent, func(e ecs.Entity, c *component.Character) {
		s.lookAround(w, e, c, dt)
		if c.LookAround && !c.Defeated {
			s.spot(w, e, c, player)
		}
		s.approach(w, e, c, player, dt)
	})
}

func (s *CharacterSystem) lookAround(w *ecs.World, e ecs.Entity, c *component.Character, dt float64) {
	if !c.LookAround || !c.CanRotate || len(c.Directions) == 0 {
		return
	}
	c.LookTimer += dt
	if c.LookTimer < s.LookInterval {
		return
	}
	c.LookTimer = 0
	if f, ok := ecs.Get(w, e, component.FacingComponent); ok {
		f.Direction = c.Directions[s.Rand.IntN(len(c.Directions))]
	}
}

func (s *CharacterSystem) spot(w *ecs.World, e ecs.Entity, c *component.Character, player ecs.Entity) {
	if c.Noticed || c.HasMoved {
		return
	}
	pm, ok := ecs.Get(w, player, component.MoverComponent)
	if !ok || pm.Blocked {
		return
	}
	if !InRange(w, c.Radius, s.Tolerance, e, player) || !LineOfSight(w, e, player) {
		return
	}

	pm.Blocked = true
	pm.Direction = cp.Vector{}
	if center, ok := Center(w, e); ok {
		FaceToward(w, player, center)
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent); ok {
		p.Noticed = true
	}
	c.CanRotate = false
	c.Noticed = true
	c.NoticeTimer = 0

	logger.Log.WithFields(logrus.Fields{"character": c.ID}).Debug("player spotted")
}

func (s *CharacterSystem) approach(w *ecs.World, e ecs.Entity, c *component.Character, player ecs.Entity, dt float64) {
	if !c.Noticed || c.HasMoved {
		return
	}
	mv, ok := ecs.Get(w, e, component.MoverComponent)
	if !ok {
		return
	}

	if !mv.Moving() {
		c.NoticeTimer += dt
		if c.NoticeTimer < s.NoticeDelay {
			return
		}
		from, okA := Center(w, e)
		to, okB := Center(w, player)
		if !okA || !okB {
			return
		}
		rel := to.Sub(from)
		if rel.Length() == 0 {
			s.arrive(w, e, c, mv, player)
			return
		}
		rel = rel.Normalize()
		mv.Direction = cp.Vector{X: math.Round(rel.X), Y: math.Round(rel.Y)}
	}

	own, okA := HitboxOf(w, e)
	target, okB := HitboxOf(w, player)
	if okA && okB && Overlaps(Grow(own, approachReach/2), target) {
		s.arrive(w, e, c, mv, player)
		return
	}
	// Something is in the way; talk from here.
	if mv.Stalled {
		logger.Log.WithFields(logrus.Fields{"character": c.ID}).Debug("approach blocked")
		s.arrive(w, e, c, mv, player)
	}
}

func (s *CharacterSystem) arrive(w *ecs.World, e ecs.Entity, c *component.Character, mv *component.Mover, player ecs.Entity) {
	mv.Direction = cp.Vector{}
	c.HasMoved = true
	c.Noticed = false
	if p, ok := ecs.Get(w, player, component.PlayerComponent); ok {
		p.Noticed = false
	}
	w.Events().Push(ecs.Event{Type: ecs.EventDialogRequest, Data: e})
}
