// Package input polls the keyboard into a per-frame snapshot.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State is one frame of input. Interact and Quit are edge-triggered.
type State struct {
	MoveX    float64
	MoveY    float64
	Interact bool
	Quit     bool
}

// Source produces the input state for the current frame.
type Source interface {
	Poll() State
}

// Keyboard reads arrows or WASD for movement, Space for interact and Escape
// or the window close button for quit.
type Keyboard struct{}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func (k *Keyboard) Poll() State {
	var s State
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		s.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		s.MoveY += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		const deadzone = 0.2
		id := gamepads[0]
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); x > deadzone {
			s.MoveX = 1
		} else if x < -deadzone {
			s.MoveX = -1
		}
		if y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical); y > deadzone {
			s.MoveY = 1
		} else if y < -deadzone {
			s.MoveY = -1
		}
		s.Interact = inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	s.Interact = s.Interact || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed()
	return s
}

// Script replays a fixed sequence of states, one per Poll, then reports no
// input. It drives the game loop in tests and demos.
type Script struct {
	States []State
	next   int
}

func (s *Script) Poll() State {
	if s.next >= len(s.States) {
		return State{}
	}
	st := s.States[s.next]
	s.next++
	return st
}
