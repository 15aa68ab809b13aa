package component

import "github.com/jakecoffman/cp"

// TransitionZone is a rectangular trigger that sends the player to another
// map. It is never drawn and never collides.
type TransitionZone struct {
	Bounds      cp.BB
	TargetMap   string
	TargetSpawn string
}

var TransitionZoneComponent = NewComponent[TransitionZone]()
