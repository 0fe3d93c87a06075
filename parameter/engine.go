package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame interval (~30 FPS, terminal bound)
	FrameUpdateInterval = 33 * time.Millisecond

	// GameUpdateInterval is the fixed simulation tick
	GameUpdateInterval = 20 * time.Millisecond

	// MaxTickDelta caps the dt fed to the simulation after a stall
	MaxTickDelta = 100 * time.Millisecond
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Input
const (
	// InputHoldTimeout is how long a terminal key counts as held without a repeat event
	InputHoldTimeout = 300 * time.Millisecond
)
