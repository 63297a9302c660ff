package parameter

import "time"

// Chain Rules
const (
	// MinChainLength is the shortest chain that triggers a clearance
	MinChainLength = 3
)

// Scoring
const (
	BasePerTile        = 10
	LengthBonusPerUnit = 5

	// ComboTier2 is the chain size where the second multiplier bracket starts
	ComboTier2 = 6
	// ComboTier3 is the chain size where the third multiplier bracket starts
	ComboTier3 = 9

	ComboMult2 = 2
	ComboMult3 = 3
)

// Time Extension
const (
	// TimeExtensionThreshold is the chain size granting a time extension once per batch
	TimeExtensionThreshold = 9
	TimeExtensionSeconds   = 5
	TimeExtensionPoints    = 100
)

// Area Clear
const (
	// AreaClearRadius is measured in board units from the removed tile center
	AreaClearRadius = 2.5
	// AreaClearBonus is the flat award per tile removed by a cascade
	AreaClearBonus = 20
)

// Clearance Pacing
const (
	// RemoveDelay paces tile removal within a batch and within a cascade
	RemoveDelay = 60 * time.Millisecond

	// CascadeGrace is the fixed window waited in window mode for cascades to report
	// Must exceed RemoveDelay * largest plausible cascade plus per-cascade overhead
	CascadeGrace = 1500 * time.Millisecond

	// CascadeMode selects "join" (wait for every cascade) or "window" (wait CascadeGrace)
	CascadeMode = "join"
)

// Session
const (
	SessionSeconds = 60
)
