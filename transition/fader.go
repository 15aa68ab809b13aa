// Package transition fades the screen to black and back around map changes.
package transition

import "math"

// Mode is the direction the fade is moving in.
type Mode int

const (
	// Untinting fades toward a clear screen. It is the resting mode.
	Untinting Mode = iota
	// Tinting fades toward black with a target pending.
	Tinting
)

func (m Mode) String() string {
	if m == Tinting {
		return "tinting"
	}
	return "untinting"
}

// Opaque is the progress at which the screen is fully black.
const Opaque = 255

// Target is the map and spawn point a transition leads to.
type Target struct {
	Map   string
	Spawn string
}

// Fader tracks fade progress in [0, Opaque].
type Fader struct {
	Speed    float64
	progress float64
	mode     Mode
	target   Target
}

func NewFader(speed float64) *Fader {
	return &Fader{Speed: speed}
}

// Arm starts fading toward target. It fails while a fade-in is already
// running, so the first zone hit wins.
func (f *Fader) Arm(target Target) bool {
	if f.mode != Untinting {
		return false
	}
	f.mode = Tinting
	f.target = target
	return true
}

// Update advances the fade by dt seconds. When a fade-in reaches Opaque it
// returns the pending target and starts fading back out.
func (f *Fader) Update(dt float64) (Target, bool) {
	var (
		done   Target
		landed bool
	)
	switch f.mode {
	case Untinting:
		f.progress -= f.Speed * dt
	case Tinting:
		f.progress += f.Speed * dt
		if f.progress >= Opaque {
			done, landed = f.target, true
			f.mode = Untinting
			f.target = Target{}
		}
	}
	f.progress = math.Max(0, math.Min(f.progress, Opaque))
	return done, landed
}

func (f *Fader) Mode() Mode {
	return f.mode
}

func (f *Fader) Progress() float64 {
	return f.progress
}

// Pending returns the target of a running fade-in.
func (f *Fader) Pending() (Target, bool) {
	return f.target, f.mode == Tinting
}

// Alpha is the overlay opacity in [0, 1].
func (f *Fader) Alpha() float64 {
	return f.progress / Opaque
}

// Settled reports whether the screen is clear and no fade is running.
func (f *Fader) Settled() bool {
	return f.mode == Untinting && f.progress == 0
}
