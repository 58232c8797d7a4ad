package parameter

// Level Catalog
const (
	// LevelCount is the number of levels in a run
	LevelCount = 8

	LevelBaseGoal       = 3
	LevelBaseEnemies    = 3
	LevelBaseReward     = 10
	LevelRewardPerIndex = 7
	RareOrbAnchorX      = 560.0
	RareOrbAnchorY      = 280.0
)
