package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// Apply routes a semantic intent through the state machine
// Actions that do not apply to the current mode are silently ignored
func (g *Game) Apply(in input.Intent) {
	switch in.Type {
	case input.IntentConfirm:
		g.confirm()
	case input.IntentPause:
		g.togglePause()
	case input.IntentEquip:
		g.equip()
	case input.IntentRestart:
		g.Restart()
	case input.IntentTap:
		g.tap(in)
	case input.IntentFullscreen:
		g.ToggleFullscreen()
	case input.IntentToggleSFX:
		a := g.settings.Audio
		a.SFXEnabled = !a.SFXEnabled
		g.SetAudio(a)
	case input.IntentToggleBGM:
		a := g.settings.Audio
		a.BGMEnabled = !a.BGMEnabled
		g.SetAudio(a)
	case input.IntentCycleLanguage:
		g.CycleLanguage()
	case input.IntentCycleDevice:
		g.SetDeviceMode(g.settings.DeviceOverride.Next())
	case input.IntentDebugDamage:
		g.debugDamage()
	case input.IntentDebugClear:
		g.debugClear()
	}
}

// Restart discards the run and begins again at level 0
// Ignored on the start panel, where confirm begins the run
func (g *Game) Restart() {
	if g.state.Mode == ModeStart {
		return
	}
	g.loadLevel(0, false)
}

// confirm begins a run or continues to the next level
func (g *Game) confirm() {
	switch {
	case g.state.Mode.AcceptsBegin():
		g.loadLevel(0, false)
	case g.state.Mode == ModeLevelClear:
		g.nextLevel()
	}
}

// nextLevel advances from level_clear carrying health and inventory
func (g *Game) nextLevel() {
	if g.state.Mode != ModeLevelClear {
		return
	}
	g.loadLevel(g.state.LevelIndex+1, true)
}

// togglePause flips between playing and paused
func (g *Game) togglePause() {
	switch g.state.Mode {
	case ModePlaying:
		g.setMode(ModePaused)
		g.emit(event.EventPause)
	case ModePaused:
		g.setMode(ModePlaying)
		g.emit(event.EventResume)
	}
}

// equip consumes one banked speed item, only between levels
func (g *Game) equip() {
	s := &g.state
	if s.Mode != ModeLevelClear || s.SpeedItems <= 0 {
		return
	}
	s.SpeedItems--
	s.SpeedBoostStacks = min(parameter.MaxSpeedBoostStacks, s.SpeedBoostStacks+1)
	s.recalcSpeed()
	g.emit(event.EventEquip)
}

// tap applies a pointer tap by mode
// On level_clear the left half of the canvas equips before continuing
func (g *Game) tap(in input.Intent) {
	switch g.state.Mode {
	case ModeStart, ModeWin, ModeLose:
		g.loadLevel(0, false)
	case ModeLevelClear:
		if in.X < parameter.PlayfieldWidth/2 {
			g.equip()
		}
		g.nextLevel()
	case ModePlaying, ModePaused:
		if in.Double {
			g.togglePause()
		}
	}
}

// debugDamage applies one damage without granting invulnerability
func (g *Game) debugDamage() {
	if g.state.Mode != ModePlaying {
		return
	}
	g.applyHit(parameter.DebugHitFlashDuration, false)
}

// debugClear completes the current level immediately
func (g *Game) debugClear() {
	if g.state.Mode != ModePlaying {
		return
	}
	g.state.LevelScore = g.state.Goal
	g.completeLevel()
}

// completeLevel ends the level as win on the final index, level_clear otherwise
func (g *Game) completeLevel() {
	s := &g.state
	if g.catalog.IsLast(s.LevelIndex) {
		g.setMode(ModeWin)
		g.emit(event.EventWin)
		g.log.Info("run won", zap.Int("score", s.TotalScore), zap.Int("health", s.Health))
		return
	}
	s.SpeedItems++
	g.setMode(ModeLevelClear)
	g.emit(event.EventLevelClear)
}

// loadLevel initializes a level
// A fresh run resets health and inventory; advancing carries them over
func (g *Game) loadLevel(index int, carry bool) {
	def, ok := g.catalog.At(index)
	if !ok {
		return
	}
	s := &g.state
	if carry {
		s.Health = min(s.Health, s.MaxHealth)
	} else {
		s.resetRun()
	}

	s.LevelIndex = index
	s.LevelScore = 0
	s.Goal = def.Goal
	s.Elapsed = 0
	s.FlashTimer = 0
	s.InvulnTimer = 0
	s.resetPlayer()

	s.Enemies = make([]Enemy, 0, def.EnemyCount)
	s.Gems = make([]Gem, 0, parameter.GemMaxActive)
	s.RareOrbs = nil

	for range def.EnemyCount {
		spawnEnemy(s, index, g.rng)
	}
	if def.RareOrb != nil {
		spawnRareOrb(s, *def.RareOrb)
	}

	g.setMode(ModePlaying)
	maintainPool(s, def, g.rng)
	g.emit(event.EventLevelStart)
	g.log.Debug("level loaded",
		zap.Int("level", index),
		zap.Int("goal", def.Goal),
		zap.Int("enemies", def.EnemyCount),
		zap.Bool("carry", carry))
}

// KeyDown feeds a key press through the input machine
func (g *Game) KeyDown(k input.Key) {
	g.touchAudio()
	in := g.input.KeyDown(k)
	if in.Type != input.IntentNone {
		g.Apply(in)
	}
}

// KeyUp releases a held direction
func (g *Game) KeyUp(k input.Key) {
	g.input.KeyUp(k)
}

// ReleaseKeys drops all held directions and any drag
func (g *Game) ReleaseKeys() {
	g.input.ReleaseAll()
}

// PointerDown handles a tap, capturing a drag when the press lands in play
func (g *Game) PointerDown(ev input.PointerEvent) {
	g.touchAudio()
	in, ok := g.input.PointerDown(ev)
	if !ok {
		return
	}
	g.Apply(in)
	if g.state.Mode == ModePlaying {
		g.input.Capture(ev)
	}
}

// PointerMove updates the drag target
func (g *Game) PointerMove(ev input.PointerEvent) {
	g.input.PointerMove(ev)
}

// PointerUp ends the drag
func (g *Game) PointerUp(ev input.PointerEvent) {
	g.input.PointerUp(ev)
}

// PointerCancel abandons the drag, same as a release
func (g *Game) PointerCancel(ev input.PointerEvent) {
	g.input.PointerCancel(ev)
}

// SetDeviceMode sets the device override and re-resolves the active mode
func (g *Game) SetDeviceMode(d input.DeviceMode) {
	g.settings.DeviceOverride = d
	g.settings.Device = d.Resolve(g.detect)
	g.input.SetDevice(g.settings.Device)
	g.emit(event.EventSettings)
}

// Redetect re-resolves auto device mode, called by hosts on resize
func (g *Game) Redetect() {
	if g.settings.DeviceOverride != input.DeviceAuto {
		return
	}
	resolved := g.settings.DeviceOverride.Resolve(g.detect)
	if resolved != g.settings.Device {
		g.settings.Device = resolved
		g.input.SetDevice(resolved)
		g.emit(event.EventSettings)
	}
}

// SetAudio replaces audio settings, clamping volumes into [0, 1]
// The started flag is sticky once set
func (g *Game) SetAudio(a AudioSettings) {
	a = clampAudio(a)
	a.Started = a.Started || g.settings.Audio.Started
	g.settings.Audio = a
	g.emit(event.EventSettings)
}

// SetLanguage selects the display language tag
func (g *Game) SetLanguage(tag string) {
	if tag == "" || tag == g.settings.Language {
		return
	}
	g.settings.Language = tag
	g.emit(event.EventSettings)
}

// CycleLanguage moves to the next language in the cycle order
func (g *Game) CycleLanguage() {
	next := g.languages[0]
	for i, l := range g.languages {
		if l == g.settings.Language {
			next = g.languages[(i+1)%len(g.languages)]
			break
		}
	}
	g.SetLanguage(next)
}

// ToggleFullscreen flips the fullscreen presentation flag
func (g *Game) ToggleFullscreen() {
	g.settings.Fullscreen = !g.settings.Fullscreen
	g.emit(event.EventFullscreen)
}

// touchAudio marks audio as started on the first user action
func (g *Game) touchAudio() {
	g.settings.Audio.Started = true
}

// clampAudio keeps volumes inside [0, 1], NaN becomes 0
func clampAudio(a AudioSettings) AudioSettings {
	if math.IsNaN(a.SFXVolume) {
		a.SFXVolume = 0
	}
	if math.IsNaN(a.BGMVolume) {
		a.BGMVolume = 0
	}
	a.SFXVolume = vmath.Clamp(a.SFXVolume, 0, 1)
	a.BGMVolume = vmath.Clamp(a.BGMVolume, 0, 1)
	return a
}
