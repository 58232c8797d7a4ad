package engine

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/gem-drift/level"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// Entity pool policy
// All placement takes an explicit random source so tests can pin outcomes

// spawnEnemy adds one patrolling enemy away from the player's start band
func spawnEnemy(s *RunState, levelIndex int, rng *rand.Rand) {
	top := parameter.EnemyBandMargin
	bottom := parameter.PlayfieldHeight - parameter.EnemyBandMargin
	ref := parameter.PlayerStartY

	y := top + rng.Float64()*(bottom-top)
	if math.Abs(y-ref) < parameter.EnemyExclusionHalfHeight {
		if y < ref {
			y -= parameter.EnemyExclusionPush
		} else {
			y += parameter.EnemyExclusionPush
		}
		y = vmath.Clamp(y, top, bottom)
	}

	speed := parameter.EnemyBaseSpeed + rng.Float64()*parameter.EnemySpeedJitter + float64(levelIndex)*parameter.EnemySpeedPerLevel
	if rng.Float64() <= 0.5 {
		speed = -speed
	}

	s.Enemies = append(s.Enemies, Enemy{
		X:      parameter.EnemySpawnMinX + rng.Float64()*parameter.EnemySpawnSpanX,
		Y:      y,
		Radius: parameter.EnemyRadius,
		VX:     speed,
	})
}

// spawnRareOrb places the level's one-shot orb at its anchor
func spawnRareOrb(s *RunState, pos vmath.Vec2) {
	s.RareOrbs = append(s.RareOrbs, RareOrb{X: pos.X, Y: pos.Y, Radius: parameter.RareOrbRadius})
}

// isPlacementSafe rejects points crowding the player, an enemy or a gem
func isPlacementSafe(s *RunState, x, y, radius float64) bool {
	c := vmath.Circle{X: x, Y: y, R: radius}
	gap := parameter.PlacementMinGap

	p := s.Player
	if !vmath.Separated(c, vmath.Circle{X: p.X, Y: p.Y, R: p.Radius}, gap) {
		return false
	}
	for _, e := range s.Enemies {
		if !vmath.Separated(c, vmath.Circle{X: e.X, Y: e.Y, R: e.Radius}, gap) {
			return false
		}
	}
	for _, g := range s.Gems {
		if !vmath.Separated(c, vmath.Circle{X: g.X, Y: g.Y, R: g.Radius}, gap) {
			return false
		}
	}
	return true
}

// placeGem tries shuffled anchors with jitter, then uniform fallback points
// Returns false when the goal is already met or no safe spot was found
func placeGem(s *RunState, def level.Definition, rng *rand.Rand) bool {
	if s.LevelScore >= s.Goal {
		return false
	}

	r := parameter.GemRadius
	w, h := parameter.PlayfieldWidth, parameter.PlayfieldHeight
	jitter := parameter.GemAnchorJitter

	candidates := make([]vmath.Vec2, len(def.GemAnchors))
	copy(candidates, def.GemAnchors)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, base := range candidates {
		x := vmath.Clamp(base.X+(rng.Float64()*2*jitter-jitter), r, w-r)
		y := vmath.Clamp(base.Y+(rng.Float64()*2*jitter-jitter), r, h-r)
		if isPlacementSafe(s, x, y, r) {
			s.Gems = append(s.Gems, Gem{X: x, Y: y, Radius: r, TTL: parameter.GemLifetime})
			return true
		}
	}

	for range parameter.GemFallbackAttempts {
		x := parameter.GemFallbackMinX + rng.Float64()*parameter.GemFallbackSpanX
		y := parameter.GemFallbackMinY + rng.Float64()*parameter.GemFallbackSpanY
		if isPlacementSafe(s, x, y, r) {
			s.Gems = append(s.Gems, Gem{X: x, Y: y, Radius: r, TTL: parameter.GemLifetime})
			return true
		}
	}
	return false
}

// gemTarget is the active gem count maintenance aims for
func gemTarget(s *RunState) int {
	return min(parameter.GemMaxActive, s.remainingGoal())
}

// maintainPool tops the gem pool up to its target while playing
// Stops at the first failed placement; the pool stays under target until a
// later tick when positions have changed
func maintainPool(s *RunState, def level.Definition, rng *rand.Rand) {
	if s.Mode != ModePlaying {
		return
	}
	target := gemTarget(s)
	for len(s.Gems) < target {
		if !placeGem(s, def, rng) {
			return
		}
	}
}
