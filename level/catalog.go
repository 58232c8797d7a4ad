// Package level defines the static catalog of levels played in a run
package level

import (
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// Definition is an immutable level record
type Definition struct {
	Goal         int          // Gems required to clear
	EnemyCount   int          // Enemies spawned at load
	RewardPerGem int          // Total score added per gem
	GemAnchors   []vmath.Vec2 // Placement anchors, jittered at spawn time
	RareOrb      *vmath.Vec2  // Optional one-shot rare orb position
}

// HasRareOrb reports whether the level places a rare orb at load
func (d Definition) HasRareOrb() bool {
	return d.RareOrb != nil
}

// MaxScore is the total reward for collecting exactly Goal gems
func (d Definition) MaxScore() int {
	return d.Goal * d.RewardPerGem
}

// Generate builds the definition for a level index
// Pure function of the index: no randomness is involved in anchor definition,
// jitter is applied later at placement time
func Generate(index int) Definition {
	if index < 0 {
		index = 0
	}

	def := Definition{
		Goal:         parameter.LevelBaseGoal + index,
		EnemyCount:   parameter.LevelBaseEnemies + index,
		RewardPerGem: parameter.LevelBaseReward + index*parameter.LevelRewardPerIndex,
		GemAnchors: []vmath.Vec2{
			{X: 240, Y: float64(210 + (index*17)%110)},
			{X: 330, Y: float64(330 - (index*13)%90)},
			{X: 470, Y: 260},
			{X: 620, Y: float64(250 + (index*7)%120 - 60)},
			{X: 770, Y: float64(420 - (index*19)%160)},
			{X: 910, Y: float64(130 + (index*29)%280)},
		},
	}
	if index%2 == 1 {
		def.RareOrb = &vmath.Vec2{X: parameter.RareOrbAnchorX, Y: parameter.RareOrbAnchorY}
	}

	// Level 0 is pinned so automated clear->equip runs see identical anchors
	if index == 0 {
		def.GemAnchors = []vmath.Vec2{
			{X: 240, Y: 245},
			{X: 360, Y: 275},
			{X: 505, Y: 260},
			{X: 700, Y: 180},
			{X: 910, Y: 380},
		}
	}

	return def
}

// Catalog is the ordered list of levels in a run
type Catalog []Definition

// DefaultCatalog generates the standard run
func DefaultCatalog() Catalog {
	c := make(Catalog, parameter.LevelCount)
	for i := range c {
		c[i] = Generate(i)
	}
	return c
}

// Len returns the number of levels
func (c Catalog) Len() int {
	return len(c)
}

// At returns the level at index, false when out of range
func (c Catalog) At(index int) (Definition, bool) {
	if index < 0 || index >= len(c) {
		return Definition{}, false
	}
	return c[index], true
}

// IsLast reports whether index is the final level
func (c Catalog) IsLast(index int) bool {
	return index >= len(c)-1
}

// TotalScore is the run score for clearing every level without bonuses or misses
func (c Catalog) TotalScore() int {
	total := 0
	for _, d := range c {
		total += d.MaxScore()
	}
	return total
}
