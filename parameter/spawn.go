package parameter

import "time"

// Board Geometry
const (
	BoardWidth  = 16.0
	BoardHeight = 10.0

	// TileRadius is the collision radius used for line-of-sight checks
	TileRadius = 0.45
	// PickRadius is the radius around a tile center that selects it under the pointer
	PickRadius = 0.5
	// TileSpacing is the minimum center distance placement tries to keep
	TileSpacing = 1.0
)

// Population
const (
	InitialPopulation = 60
	MinPopulation     = 40
)

// Spawn Pacing
const (
	// SpawnInterval paces tile creation within one animated batch
	SpawnInterval = 30 * time.Millisecond
	// PourDuration is the pour cue played before a batch becomes interactive
	PourDuration = 400 * time.Millisecond

	MaxPlacementTries = 8
)

// Special Kinds
const (
	AreaClearChance = 0.03
	WildcardChance  = 0.03
)

// DefaultSpawnWeight applies to every flavor when no weights are configured
const DefaultSpawnWeight = 1.0
