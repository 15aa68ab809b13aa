package component

import "github.com/jakecoffman/cp"

// EncounterZone tags a region where wild monsters of Biome can be rolled.
type EncounterZone struct {
	Bounds cp.BB
	Biome  string
}

var EncounterZoneComponent = NewComponent[EncounterZone]()
