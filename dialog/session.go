// Package dialog runs a conversation with one character at a time.
package dialog

import (
	"errors"
	"fmt"

	"github.com/milk9111/tilequest/ecs"
	"github.com/milk9111/tilequest/ecs/component"
	"github.com/milk9111/tilequest/logger"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotCharacter = errors.New("dialog: entity is not a character")
	ErrNoLines      = errors.New("dialog: character has nothing to say")
)

// Ended is posted once when a session finishes.
type Ended struct {
	Character ecs.Entity
	ID        string
}

// Session walks through a character's lines. A line can only be skipped once
// it has been on screen for the advance delay.
type Session struct {
	world     *ecs.World
	character ecs.Entity
	id        string
	lines     []string
	index     int
	elapsed   float64
	delay     float64
	ended     chan<- Ended
	done      bool
	box       *box
}

// Open starts a session with character. ended receives exactly one message
// when the last line is dismissed; it must have room for it.
func Open(w *ecs.World, character ecs.Entity, advanceDelay float64, ended chan<- Ended) (*Session, error) {
	c, ok := ecs.Get(w, character, component.CharacterComponent)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotCharacter, character)
	}
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoLines, c.ID)
	}

	logger.Log.WithFields(logrus.Fields{
		"character": c.ID,
		"defeated":  c.Defeated,
		"lines":     len(lines),
	}).Info("dialog opened")

	return &Session{
		world:     w,
		character: character,
		id:        c.ID,
		lines:     append([]string(nil), lines...),
		delay:     advanceDelay,
		ended:     ended,
	}, nil
}

// Update advances the line on a fresh advance press once the delay has
// passed. Dismissing the last line ends the session.
func (s *Session) Update(dt float64, advance bool) {
	if s == nil || s.done {
		return
	}
	s.elapsed += dt
	if !advance || s.elapsed < s.delay {
		return
	}
	s.index++
	s.elapsed = 0
	if s.index >= len(s.lines) {
		s.end()
	}
}

// end releases the character's rotation lock, marks the trainer beaten and
// reports the end to the scheduler.
func (s *Session) end() {
	s.done = true
	if c, ok := ecs.Get(s.world, s.character, component.CharacterComponent); ok {
		c.CanRotate = true
		c.Defeated = true
	}
	logger.Log.WithFields(logrus.Fields{"character": s.id}).Info("dialog ended")
	if s.ended != nil {
		s.ended <- Ended{Character: s.character, ID: s.id}
	}
}

// Line is the text currently shown, or "" once the session is done.
func (s *Session) Line() string {
	if s == nil || s.done || s.index >= len(s.lines) {
		return ""
	}
	return s.lines[s.index]
}

func (s *Session) Done() bool {
	return s == nil || s.done
}

func (s *Session) Character() ecs.Entity {
	return s.character
}

func (s *Session) Speaker() string {
	return s.id
}
