package engine

import (
	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// Update advances the simulation by dt seconds
// No-op outside playing; dt is clamped to [0, MaxStep] with non-finite values treated as 0
// Pickups resolve before damage so a gem collected on the tick of a hit counts
func (g *Game) Update(dt float64) {
	if g.state.Mode != ModePlaying {
		return
	}
	dt = sanitizeDelta(dt)
	g.frame++

	s := &g.state
	def := g.Level()
	w, h := parameter.PlayfieldWidth, parameter.PlayfieldHeight

	// Player movement
	p := &s.Player
	dir := g.input.Movement().Direction(vmath.V2(p.X, p.Y)).Normalize()
	p.VX = dir.X * p.Speed
	p.VY = dir.Y * p.Speed
	p.X, p.Y = vmath.ClampInside(p.X+p.VX*dt, p.Y+p.VY*dt, p.Radius, w, h)

	// Enemy patrol with edge reflection
	for i := range s.Enemies {
		e := &s.Enemies[i]
		e.X += e.VX * dt
		if e.X < e.Radius {
			e.X = e.Radius
			e.VX = -e.VX
		} else if e.X > w-e.Radius {
			e.X = w - e.Radius
			e.VX = -e.VX
		}
	}

	// Gem expiry
	kept := s.Gems[:0]
	for _, gem := range s.Gems {
		gem.TTL -= dt
		if gem.TTL > 0 {
			kept = append(kept, gem)
		}
	}
	s.Gems = kept

	maintainPool(s, def, g.rng)

	player := vmath.Circle{X: p.X, Y: p.Y, R: p.Radius}

	// Gem pickups
	kept = s.Gems[:0]
	for _, gem := range s.Gems {
		if vmath.Overlaps(player, vmath.Circle{X: gem.X, Y: gem.Y, R: gem.Radius}) {
			s.LevelScore++
			s.TotalScore += def.RewardPerGem
			g.emit(event.EventGem)
			continue
		}
		kept = append(kept, gem)
	}
	if len(kept) < len(s.Gems) {
		s.Gems = kept
		maintainPool(s, def, g.rng)
	}

	// Rare orb pickups
	orbs := s.RareOrbs[:0]
	for _, orb := range s.RareOrbs {
		if vmath.Overlaps(player, vmath.Circle{X: orb.X, Y: orb.Y, R: orb.Radius}) {
			s.MaxHealth = min(parameter.MaxHealthCap, s.MaxHealth+1)
			s.Health = min(s.MaxHealth, s.Health+1)
			s.RareBoosts++
			g.emit(event.EventRare)
			continue
		}
		orbs = append(orbs, orb)
	}
	s.RareOrbs = orbs

	if s.LevelScore >= s.Goal {
		g.completeLevel()
	}

	// Damage still lands on the tick that completes the level
	if s.InvulnTimer > 0 {
		s.InvulnTimer -= dt
	}
	if s.InvulnTimer <= 0 {
		for _, e := range s.Enemies {
			if vmath.Overlaps(player, vmath.Circle{X: e.X, Y: e.Y, R: e.Radius}) {
				g.applyHit(parameter.HitFlashDuration, true)
				break
			}
		}
	}

	if s.FlashTimer > 0 {
		s.FlashTimer -= dt
	}
	s.Elapsed += dt
}

// applyHit removes one health and starts the flash
// Invulnerability is granted only for enemy contact
func (g *Game) applyHit(flash float64, invulnerable bool) {
	s := &g.state
	s.Health = max(0, s.Health-1)
	s.FlashTimer = flash
	if invulnerable {
		s.InvulnTimer = parameter.InvulnerabilityDuration
	}
	g.emit(event.EventHit)
	if s.Health <= 0 {
		g.setMode(ModeLose)
		g.emit(event.EventLose)
	}
}
