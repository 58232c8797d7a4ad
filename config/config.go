// Package config loads game settings from TOML with environment overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
	"github.com/lixenwraith/gem-drift/vmath"
)

type Config struct {
	Game     GameConfig          `toml:"game"`
	Audio    AudioConfig         `toml:"audio"`
	Logging  LoggingConfig       `toml:"logging"`
	Observer ObserverConfig      `toml:"observer"`
	Keys     map[string][]string `toml:"keys"` // Action name -> key names, see input.KeyTable.Apply
}

type GameConfig struct {
	Seed          uint64        `toml:"seed"`     // 0 picks a seed from the clock
	Device        string        `toml:"device"`   // "auto", "pointer" or "keyboard"
	Language      string        `toml:"language"` // "auto" follows $LANG
	FrameInterval time.Duration `toml:"frame_interval"`
	Fullscreen    bool          `toml:"fullscreen"`

	// KeyHoldTimeout releases a direction when the terminal stops repeating it
	// Raise it for terminals with a long initial repeat delay
	KeyHoldTimeout time.Duration `toml:"key_hold_timeout"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"` // false skips speaker initialization entirely
	SFXEnabled bool    `toml:"sfx_enabled"`
	SFXVolume  float64 `toml:"sfx_volume"` // 0.0-1.0
	BGMEnabled bool    `toml:"bgm_enabled"`
	BGMVolume  float64 `toml:"bgm_volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"` // "json" or "console"
	Dir       string `toml:"dir"`
	MaxSizeMB int    `toml:"max_size_mb"`
	Debug     bool   `toml:"debug"` // false discards all logs in the interactive game
}

type ObserverConfig struct {
	Enabled      bool          `toml:"enabled"`
	BindAddress  string        `toml:"bind_address"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	PublishEvery time.Duration `toml:"publish_every"`
}

// Load reads path over the defaults
// An empty path or a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Device:         "auto",
			Language:       "auto",
			FrameInterval:  parameter.FrameUpdateInterval,
			KeyHoldTimeout: parameter.KeyHoldTimeout,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SFXEnabled: true,
			SFXVolume:  parameter.DefaultSFXVolume,
			BGMEnabled: true,
			BGMVolume:  parameter.DefaultBGMVolume,
			SampleRate: parameter.AudioSampleRate,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			Dir:       "logs",
			MaxSizeMB: 10,
		},
		Observer: ObserverConfig{
			BindAddress:  "127.0.0.1:7070",
			WriteTimeout: 5 * time.Second,
			PublishEvery: 100 * time.Millisecond,
		},
	}
}

// Validate normalizes ranges and rejects unknown names
func (c *Config) Validate() error {
	if _, err := input.ParseDeviceMode(c.Game.Device); err != nil {
		return fmt.Errorf("game.device: %w", err)
	}
	if strings.TrimSpace(c.Game.Language) == "" {
		c.Game.Language = "auto"
	}
	if c.Game.FrameInterval <= 0 {
		c.Game.FrameInterval = parameter.FrameUpdateInterval
	}
	if c.Game.KeyHoldTimeout <= 0 {
		c.Game.KeyHoldTimeout = parameter.KeyHoldTimeout
	}

	c.Audio.SFXVolume = clampVolume(c.Audio.SFXVolume)
	c.Audio.BGMVolume = clampVolume(c.Audio.BGMVolume)
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = parameter.AudioSampleRate
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}

	if c.Observer.Enabled && c.Observer.BindAddress == "" {
		return errors.New("observer.bind_address: required when observer is enabled")
	}
	if c.Observer.PublishEvery <= 0 {
		c.Observer.PublishEvery = 100 * time.Millisecond
	}
	if c.Observer.WriteTimeout <= 0 {
		c.Observer.WriteTimeout = 5 * time.Second
	}

	for action := range c.Keys {
		if _, err := input.ParseAction(action); err != nil {
			return fmt.Errorf("keys.%s: %w", action, err)
		}
	}
	return nil
}

// DeviceMode returns the configured device override
// Validate has already rejected unknown names
func (c *Config) DeviceMode() input.DeviceMode {
	d, _ := input.ParseDeviceMode(c.Game.Device)
	return d
}

// EngineAudio converts the audio section into engine settings
func (c *Config) EngineAudio() engine.AudioSettings {
	return engine.AudioSettings{
		SFXEnabled: c.Audio.SFXEnabled,
		SFXVolume:  c.Audio.SFXVolume,
		BGMEnabled: c.Audio.BGMEnabled,
		BGMVolume:  c.Audio.BGMVolume,
	}
}

func clampVolume(v float64) float64 {
	if v != v {
		return 0
	}
	return vmath.Clamp(v, 0, 1)
}
