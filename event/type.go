package event

import "time"

// EventType represents the type of game event
type EventType int

const (
	// === Chain Event ===

	// EventChainChanged signals the active chain membership changed
	// Trigger: ChainSystem on registration, press reset, release
	// Consumer: line/dot renderer | Payload: *ChainChangedPayload
	EventChainChanged EventType = iota

	// === Clearance Event ===

	// EventTileRemoved signals a tile was destroyed by a batch or cascade
	// Trigger: ClearSystem removal step
	// Consumer: particle/audio | Payload: *TileRemovedPayload
	EventTileRemoved

	// EventComboReached signals a released chain reached a multiplier tier above the base
	// Trigger: ClearSystem when a batch starts | Payload: *ComboReachedPayload
	EventComboReached

	// EventBatchSettled signals a clearance batch finished and issued its refill
	// Trigger: ClearSystem settling phase | Payload: *BatchSettledPayload
	EventBatchSettled

	// === Score Event ===

	// EventScoreChanged carries the new running total
	// Trigger: ScoreSystem on every addition or reset | Payload: *ScoreChangedPayload
	EventScoreChanged

	// EventTimeExtensionGranted signals seconds added to the session countdown
	// Trigger: ClearSystem once per qualifying batch
	// Consumer: Timer, timer UI | Payload: *TimeExtensionPayload
	EventTimeExtensionGranted

	// === Spawn Event ===

	// EventSpawnBatchStarted signals an animated pour batch began
	// Trigger: SpawnSystem batch task | Payload: *SpawnBatchPayload
	EventSpawnBatchStarted

	// EventTileSpawned signals a tile was created (spawning or live)
	// Trigger: SpawnSystem | Payload: *TileSpawnedPayload
	EventTileSpawned

	// EventTilesActivated signals a poured batch became interactive
	// Trigger: SpawnSystem after the pour cue | Payload: *SpawnBatchPayload
	EventTilesActivated

	// EventMinimumPopulationEnforced signals immediate top-up below the population floor
	// Trigger: SpawnSystem.EnsureMinimumPopulation | Payload: *MinimumPopulationPayload
	EventMinimumPopulationEnforced

	// === Session Event ===

	// EventSessionStarted signals a fresh session with a reset score and board
	// Trigger: Session.Start | Payload: *SessionPayload
	EventSessionStarted

	// EventSessionExpired signals the countdown reached zero and input is disabled
	// Trigger: Timer | Payload: *SessionPayload
	EventSessionExpired

	eventTypeCount
)

// GameEvent is a single outbound notification
type GameEvent struct {
	Type    EventType
	Payload any
	Time    time.Time
}
