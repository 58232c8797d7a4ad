package parameter

// Playfield
const (
	// PlayfieldWidth is the canvas width in pixels
	PlayfieldWidth = 960.0

	// PlayfieldHeight is the canvas height in pixels
	PlayfieldHeight = 540.0
)

// Player Avatar
const (
	PlayerStartX    = 140.0
	PlayerStartY    = 270.0
	PlayerRadius    = 16.0
	PlayerBaseSpeed = 250.0

	// SpeedBoostPerStack is the speed added by each equipped boost stack, pixels/sec
	SpeedBoostPerStack = 32.0

	// MaxSpeedBoostStacks caps equipped boosts for a run
	MaxSpeedBoostStacks = 6
)

// Health & Damage
const (
	StartingHealth = 3
	MaxHealthCap   = 10

	// InvulnerabilityDuration is the post-hit window where enemy contact is ignored, seconds
	InvulnerabilityDuration = 1.1

	// HitFlashDuration is the white flash shown after an enemy hit, seconds
	HitFlashDuration = 0.25

	// DebugHitFlashDuration is the flash used by the forced-damage shortcut, seconds
	DebugHitFlashDuration = 0.2
)
