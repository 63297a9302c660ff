package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the scheduler pump interval (clock tick)
	GameUpdateInterval = 10 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)

// Logging
const (
	// LogDir holds the debug log file when --debug is set
	LogDir = "logs"

	// LogFileName is the debug log file name inside LogDir
	LogFileName = "tile-chain.log"

	// MaxLogSize triggers rotation of an existing log file at startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)
