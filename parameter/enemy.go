package parameter

// Enemy Patrol
const (
	EnemyRadius = 17.0

	// EnemyBandMargin keeps spawns this far from the top and bottom edges
	EnemyBandMargin = 72.0

	// EnemyExclusionHalfHeight is the half-height of the band around the player's start row
	// where enemies may not spawn
	EnemyExclusionHalfHeight = 70.0

	// EnemyExclusionPush is how far a spawn inside the exclusion band is moved away from it
	EnemyExclusionPush = 95.0

	// EnemySpawnMinX and EnemySpawnSpanX define the horizontal spawn range [min, min+span)
	EnemySpawnMinX  = 260.0
	EnemySpawnSpanX = 640.0

	// EnemyBaseSpeed plus a random share of EnemySpeedJitter is the patrol speed, pixels/sec
	EnemyBaseSpeed   = 110.0
	EnemySpeedJitter = 70.0

	// EnemySpeedPerLevel is added per level index
	EnemySpeedPerLevel = 5.0
)
