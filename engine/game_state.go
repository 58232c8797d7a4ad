package engine

import (
	"fmt"

	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
)

// Mode is the run-level game mode
type Mode uint8

const (
	ModeStart      Mode = iota // Title panel, waiting for begin
	ModePlaying                // Simulation advancing
	ModePaused                 // Suspended, all state preserved
	ModeLevelClear             // Goal met on a non-final level, waiting for continue
	ModeWin                    // Final level cleared
	ModeLose                   // Health depleted
)

var modeNames = [...]string{
	ModeStart:      "start",
	ModePlaying:    "playing",
	ModePaused:     "paused",
	ModeLevelClear: "level_clear",
	ModeWin:        "win",
	ModeLose:       "lose",
}

// String returns the stable snapshot name
func (m Mode) String() string {
	if int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode resolves a snapshot mode name
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return ModeStart, fmt.Errorf("%w: unknown mode %q", ErrBadSnapshot, s)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// AcceptsBegin reports whether a begin action starts a new run from this mode
func (m Mode) AcceptsBegin() bool {
	return m == ModeStart || m == ModeWin || m == ModeLose
}

// Player is the avatar, owned exclusively by the simulation
type Player struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	VX        float64 `json:"vx" yaml:"vx"`
	VY        float64 `json:"vy" yaml:"vy"`
	Radius    float64 `json:"radius" yaml:"radius"`
	BaseSpeed float64 `json:"baseSpeed" yaml:"baseSpeed"`
	Speed     float64 `json:"speed" yaml:"speed"`
}

// Enemy patrols horizontally, reflecting at the playfield edges
type Enemy struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
	VX     float64 `json:"vx" yaml:"vx"`
}

// Gem is a transient pickup with a lifetime in seconds
type Gem struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
	TTL    float64 `json:"ttl" yaml:"ttl"`
}

// RareOrb is the one-per-level health bonus
type RareOrb struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// AudioSettings is the player-facing mixer configuration
type AudioSettings struct {
	Started    bool    `json:"started" yaml:"started"` // Set by the first user action
	SFXEnabled bool    `json:"sfxEnabled" yaml:"sfxEnabled"`
	SFXVolume  float64 `json:"sfxVolume" yaml:"sfxVolume"`
	BGMEnabled bool    `json:"bgmEnabled" yaml:"bgmEnabled"`
	BGMVolume  float64 `json:"bgmVolume" yaml:"bgmVolume"`
}

// DefaultAudioSettings returns both channels enabled at default volumes
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{
		SFXEnabled: true,
		SFXVolume:  parameter.DefaultSFXVolume,
		BGMEnabled: true,
		BGMVolume:  parameter.DefaultBGMVolume,
	}
}

// Settings holds non-gameplay state carried in snapshots
type Settings struct {
	Audio          AudioSettings
	Language       string
	DeviceOverride input.DeviceMode // As configured, may be auto
	Device         input.DeviceMode // Resolved, never auto
	Fullscreen     bool
}

// RunState is the single owned aggregate mutated by the simulation and state machine
type RunState struct {
	Mode       Mode
	LevelIndex int
	LevelScore int // Gems collected this level
	Goal       int
	TotalScore int // Reward accumulated across the run

	Health     int
	MaxHealth  int
	RareBoosts int

	SpeedItems       int // Banked, unequipped boosts
	SpeedBoostStacks int // Equipped boosts, capped at MaxSpeedBoostStacks

	InvulnTimer float64 // Seconds of remaining post-hit protection
	FlashTimer  float64 // Seconds of remaining hit flash
	Elapsed     float64 // Seconds played on the current level

	Player   Player
	Enemies  []Enemy
	Gems     []Gem
	RareOrbs []RareOrb
}

// newRunState returns the title-screen state
func newRunState(goal int) RunState {
	s := RunState{
		Mode:      ModeStart,
		Goal:      goal,
		Health:    parameter.StartingHealth,
		MaxHealth: parameter.StartingHealth,
	}
	s.resetPlayer()
	return s
}

// resetRun zeroes run-level counters for a fresh run
func (s *RunState) resetRun() {
	s.MaxHealth = parameter.StartingHealth
	s.Health = parameter.StartingHealth
	s.TotalScore = 0
	s.RareBoosts = 0
	s.SpeedItems = 0
	s.SpeedBoostStacks = 0
}

// resetPlayer returns the avatar to the start position with current speed
func (s *RunState) resetPlayer() {
	s.Player = Player{
		X:         parameter.PlayerStartX,
		Y:         parameter.PlayerStartY,
		Radius:    parameter.PlayerRadius,
		BaseSpeed: parameter.PlayerBaseSpeed,
	}
	s.recalcSpeed()
}

// recalcSpeed applies equipped boost stacks to the base speed
func (s *RunState) recalcSpeed() {
	s.Player.Speed = s.Player.BaseSpeed + float64(s.SpeedBoostStacks)*parameter.SpeedBoostPerStack
}

// remainingGoal is the number of gems still needed, never negative
func (s *RunState) remainingGoal() int {
	return max(0, s.Goal-s.LevelScore)
}
