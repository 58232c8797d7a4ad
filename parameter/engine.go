package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the live frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// FixedStep is the simulation step used by Advance sub-stepping, in seconds
	FixedStep = 1.0 / 60.0

	// FixedStepDuration is FixedStep as a duration
	FixedStepDuration = time.Second / 60

	// MaxStep caps a single Update delta so a stalled frame cannot tunnel
	// the player through enemies or gems, in seconds
	MaxStep = 0.033

	// EventQueueSize is the initial capacity of the per-frame event buffer
	EventQueueSize = 64
)

// Input Timing
const (
	// DoubleTapWindow is the maximum gap between taps counted as a double tap
	DoubleTapWindow = 260 * time.Millisecond

	// DoubleTapRadius is the maximum distance between taps counted as a double tap, in pixels
	DoubleTapRadius = 26.0

	// KeyHoldTimeout releases a direction key when the terminal stops repeating it
	KeyHoldTimeout = 150 * time.Millisecond

	// NarrowTerminalColumns is the width below which auto device mode picks pointer input
	NarrowTerminalColumns = 80
)
