package parameter

// Gem Pool
const (
	GemRadius = 11.0

	// GemLifetime is how long a placed gem stays pickable, seconds
	GemLifetime = 7.5

	// GemMaxActive is the upper bound on simultaneously active gems
	GemMaxActive = 3

	// GemAnchorJitter is the half-width of the random offset applied to an anchor
	GemAnchorJitter = 16.0

	// GemFallbackAttempts is the number of uniform random tries after all anchors fail
	GemFallbackAttempts = 24

	// Fallback region [min, min+span) on each axis
	GemFallbackMinX  = 220.0
	GemFallbackSpanX = 700.0
	GemFallbackMinY  = 80.0
	GemFallbackSpanY = 360.0

	// PlacementMinGap is the edge-to-edge clearance required against player, enemies and gems
	PlacementMinGap = 26.0
)

// Rare Orb
const (
	RareOrbRadius = 10.0
)
