package event

import "github.com/lixenwraith/tile-chain/board"

// ChainChangedPayload lists chain members in connection order, empty when the chain reset
type ChainChangedPayload struct {
	Tiles []board.TileID
}

// TileRemovedPayload identifies a destroyed tile
type TileRemovedPayload struct {
	TileID  board.TileID
	Cascade bool // Removed by an area-clear cascade rather than the chain itself
}

// ComboReachedPayload carries the tier label and chain size
type ComboReachedPayload struct {
	Tier  string
	Count int
}

// BatchSettledPayload summarizes a finished clearance batch
type BatchSettledPayload struct {
	BatchID string
	Count   int
	Extra   int
	Refill  int // Count + Extra, the single spawn request issued on settle
	Points  int
}

// ScoreChangedPayload carries the new total
type ScoreChangedPayload struct {
	Total int
	Delta int
}

// TimeExtensionPayload carries granted seconds
type TimeExtensionPayload struct {
	Seconds int
}

// SpawnBatchPayload carries the tile count of a pour batch
type SpawnBatchPayload struct {
	Count int
}

// TileSpawnedPayload describes a created tile
type TileSpawnedPayload struct {
	TileID board.TileID
	Type   board.TileType
	Kind   board.Kind
}

// MinimumPopulationPayload carries the immediately spawned deficit
type MinimumPopulationPayload struct {
	Deficit int
}

// SessionPayload identifies a session and its final or starting score
type SessionPayload struct {
	SessionID string
	Score     int
}
