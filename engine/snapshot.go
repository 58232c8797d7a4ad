package engine

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

// ErrBadSnapshot is returned when a snapshot cannot be restored
var ErrBadSnapshot = errors.New("bad snapshot")

// CoordSystem describes the snapshot coordinate convention
const CoordSystem = "origin top-left, +x right, +y down, units pixels"

// LevelInfo is the level progress block of a snapshot
type LevelInfo struct {
	Current      int `json:"current" yaml:"current"` // 1-based
	Total        int `json:"total" yaml:"total"`
	LevelScore   int `json:"levelScore" yaml:"levelScore"`
	Goal         int `json:"goal" yaml:"goal"`
	RewardPerGem int `json:"rewardPerGem" yaml:"rewardPerGem"`
}

// Timers are remaining and elapsed durations in seconds
type Timers struct {
	Elapsed         float64 `json:"elapsed" yaml:"elapsed"`
	InvulnerableFor float64 `json:"invulnerableFor" yaml:"invulnerableFor"`
	Flash           float64 `json:"flash" yaml:"flash"`
}

// Flags are presentation booleans
type Flags struct {
	Fullscreen bool `json:"fullscreen" yaml:"fullscreen"`
	CanRestart bool `json:"canRestart" yaml:"canRestart"` // A confirm or tap would begin or continue

}

// Snapshot is the serializable view of a game
// Field names are stable; renderers, observers and automation read it
type Snapshot struct {
	CoordSystem    string           `json:"coordSystem" yaml:"coordSystem"`
	Mode           Mode             `json:"mode" yaml:"mode"`
	Language       string           `json:"language" yaml:"language"`
	DeviceMode     input.DeviceMode `json:"deviceMode" yaml:"deviceMode"`
	DeviceOverride input.DeviceMode `json:"deviceOverride" yaml:"deviceOverride"`
	Level          LevelInfo        `json:"level" yaml:"level"`

	Player   Player    `json:"player" yaml:"player"`
	Enemies  []Enemy   `json:"enemies" yaml:"enemies"`
	Gems     []Gem     `json:"gems" yaml:"gems"`
	RareOrbs []RareOrb `json:"rareOrbs" yaml:"rareOrbs"`

	TotalScore       int `json:"totalScore" yaml:"totalScore"`
	Health           int `json:"health" yaml:"health"`
	MaxHealth        int `json:"maxHealth" yaml:"maxHealth"`
	RareBoosts       int `json:"rareBoosts" yaml:"rareBoosts"`
	SpeedItems       int `json:"speedItems" yaml:"speedItems"`
	SpeedBoostStacks int `json:"speedBoostStacks" yaml:"speedBoostStacks"`

	Audio  AudioSettings `json:"audio" yaml:"audio"`
	Timers Timers        `json:"timers" yaml:"timers"`
	Flags  Flags         `json:"flags" yaml:"flags"`

	Frame int64  `json:"frame" yaml:"frame"`
	RNG   string `json:"rng" yaml:"rng"` // Hex PCG state
}

// Snapshot captures the full game state
// Expired timers export as 0; a restored game behaves identically either way
func (g *Game) Snapshot() Snapshot {
	s := &g.state
	def := g.Level()

	rng, _ := g.src.MarshalBinary()

	return Snapshot{
		CoordSystem:    CoordSystem,
		Mode:           s.Mode,
		Language:       g.settings.Language,
		DeviceMode:     g.settings.Device,
		DeviceOverride: g.settings.DeviceOverride,
		Level: LevelInfo{
			Current:      s.LevelIndex + 1,
			Total:        g.catalog.Len(),
			LevelScore:   s.LevelScore,
			Goal:         s.Goal,
			RewardPerGem: def.RewardPerGem,
		},
		Player:           s.Player,
		Enemies:          append(make([]Enemy, 0, len(s.Enemies)), s.Enemies...),
		Gems:             append(make([]Gem, 0, len(s.Gems)), s.Gems...),
		RareOrbs:         append(make([]RareOrb, 0, len(s.RareOrbs)), s.RareOrbs...),
		TotalScore:       s.TotalScore,
		Health:           s.Health,
		MaxHealth:        s.MaxHealth,
		RareBoosts:       s.RareBoosts,
		SpeedItems:       s.SpeedItems,
		SpeedBoostStacks: s.SpeedBoostStacks,
		Audio:            g.settings.Audio,
		Timers: Timers{
			Elapsed:         s.Elapsed,
			InvulnerableFor: max(0, s.InvulnTimer),
			Flash:           max(0, s.FlashTimer),
		},
		Flags: Flags{
			Fullscreen: g.settings.Fullscreen,
			CanRestart: s.Mode != ModePlaying,
		},
		Frame: g.frame,
		RNG:   hex.EncodeToString(rng),
	}
}

// Restore rebuilds a game from a snapshot
// Catalog, detector, languages and logger come from opts; everything else from snap
// The level goal always comes from the catalog
// Input state is not part of a snapshot and starts released
func Restore(snap Snapshot, opts Options) (*Game, error) {
	g := New(opts)

	if int(snap.Mode) >= len(modeNames) {
		return nil, fmt.Errorf("%w: mode %d", ErrBadSnapshot, snap.Mode)
	}
	index := snap.Level.Current - 1
	def, ok := g.catalog.At(index)
	if !ok {
		return nil, fmt.Errorf("%w: level %d of %d", ErrBadSnapshot, snap.Level.Current, g.catalog.Len())
	}
	if err := checkFinite(snap); err != nil {
		return nil, err
	}
	if snap.RNG != "" {
		raw, err := hex.DecodeString(snap.RNG)
		if err != nil {
			return nil, fmt.Errorf("%w: rng: %w", ErrBadSnapshot, err)
		}
		if err := g.src.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("%w: rng: %w", ErrBadSnapshot, err)
		}
	}

	maxHealth := min(max(1, snap.MaxHealth), parameter.MaxHealthCap)
	g.state = RunState{
		Mode:             snap.Mode,
		LevelIndex:       index,
		LevelScore:       max(0, snap.Level.LevelScore),
		Goal:             def.Goal,
		TotalScore:       snap.TotalScore,
		Health:           min(max(0, snap.Health), maxHealth),
		MaxHealth:        maxHealth,
		RareBoosts:       snap.RareBoosts,
		SpeedItems:       max(0, snap.SpeedItems),
		SpeedBoostStacks: min(max(0, snap.SpeedBoostStacks), parameter.MaxSpeedBoostStacks),
		InvulnTimer:      max(0, snap.Timers.InvulnerableFor),
		FlashTimer:       max(0, snap.Timers.Flash),
		Elapsed:          max(0, snap.Timers.Elapsed),
		Player:           snap.Player,
		Enemies:          append([]Enemy(nil), snap.Enemies...),
		Gems:             append([]Gem(nil), snap.Gems...),
		RareOrbs:         append([]RareOrb(nil), snap.RareOrbs...),
	}

	p := &g.state.Player
	p.Radius = parameter.PlayerRadius
	p.BaseSpeed = parameter.PlayerBaseSpeed
	p.X, p.Y = vmath.ClampInside(p.X, p.Y, p.Radius, parameter.PlayfieldWidth, parameter.PlayfieldHeight)
	g.state.recalcSpeed()

	device := snap.DeviceMode
	if device == input.DeviceAuto {
		device = snap.DeviceOverride.Resolve(g.detect)
	}
	g.settings = Settings{
		Audio:          clampAudio(snap.Audio),
		Language:       snap.Language,
		DeviceOverride: snap.DeviceOverride,
		Device:         device,
		Fullscreen:     snap.Flags.Fullscreen,
	}
	if g.settings.Language == "" {
		g.settings.Language = g.languages[0]
	}
	g.input.SetDevice(device)
	g.frame = snap.Frame
	return g, nil
}

// checkFinite rejects snapshots carrying NaN or infinite numbers
func checkFinite(snap Snapshot) error {
	p := snap.Player
	values := []float64{
		p.X, p.Y, p.VX, p.VY, p.Radius, p.BaseSpeed, p.Speed,
		snap.Timers.Elapsed, snap.Timers.InvulnerableFor, snap.Timers.Flash,
		snap.Audio.SFXVolume, snap.Audio.BGMVolume,
	}
	for _, e := range snap.Enemies {
		values = append(values, e.X, e.Y, e.Radius, e.VX)
	}
	for _, gem := range snap.Gems {
		values = append(values, gem.X, gem.Y, gem.Radius, gem.TTL)
	}
	for _, o := range snap.RareOrbs {
		values = append(values, o.X, o.Y, o.Radius)
	}
	for _, v := range values {
		if !vmath.Finite(v) {
			return fmt.Errorf("%w: non-finite value %v", ErrBadSnapshot, v)
		}
	}
	return nil
}
