package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/gem-drift/input"
	"github.com/lixenwraith/gem-drift/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gemdrift.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.Device != "auto" || cfg.Audio.SFXVolume != parameter.DefaultSFXVolume {
		t.Errorf("Expected defaults, got %+v", cfg.Game)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
seed = 42
device = "pointer"
language = "en"
frame_interval = "20ms"

[audio]
bgm_enabled = false
sfx_volume = 1.5

[logging]
format = "json"

[observer]
enabled = true
publish_every = "250ms"

[keys]
equip = ["q"]
pause = ["space", "tab"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.Game.Seed != 42 || cfg.DeviceMode() != input.DevicePointer || cfg.Game.Language != "en" {
		t.Errorf("Game section not applied: %+v", cfg.Game)
	}
	if cfg.Game.FrameInterval != 20*time.Millisecond {
		t.Errorf("Expected 20ms frame interval, got %v", cfg.Game.FrameInterval)
	}
	if cfg.Audio.BGMEnabled || !cfg.Audio.SFXEnabled {
		t.Errorf("Audio toggles not applied: %+v", cfg.Audio)
	}
	if cfg.Audio.SFXVolume != 1 {
		t.Errorf("Expected sfx volume clamped to 1, got %v", cfg.Audio.SFXVolume)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Errorf("Logging section not merged: %+v", cfg.Logging)
	}
	if !cfg.Observer.Enabled || cfg.Observer.PublishEvery != 250*time.Millisecond || cfg.Observer.BindAddress == "" {
		t.Errorf("Observer section not merged: %+v", cfg.Observer)
	}
	if len(cfg.Keys["pause"]) != 2 {
		t.Errorf("Expected two pause bindings, got %v", cfg.Keys["pause"])
	}

	a := cfg.EngineAudio()
	if a.BGMEnabled || a.SFXVolume != 1 {
		t.Errorf("EngineAudio mismatch: %+v", a)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, "[game\nseed = ")
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestValidateRejectsUnknownNames(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"device", func(c *Config) { c.Game.Device = "gamepad" }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"key action", func(c *Config) { c.Keys = map[string][]string{"jump": {"x"}} }},
		{"observer address", func(c *Config) {
			c.Observer.Enabled = true
			c.Observer.BindAddress = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeed:         "7",
		EnvDevice:       "keyboard",
		EnvAudioEnabled: "false",
		EnvSFXVolume:    "25",
		EnvBGMVolume:    "250",
		EnvSampleRate:   "bogus",
		EnvDebug:        "true",
		EnvObserverAddr: "0.0.0.0:9000",
	}
	cfg := Defaults()
	cfg.ApplyEnvFrom(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if cfg.Game.Seed != 7 || cfg.Game.Device != "keyboard" {
		t.Errorf("Game overrides not applied: %+v", cfg.Game)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.Audio.SFXVolume != 0.25 || cfg.Audio.BGMVolume != 1 {
		t.Errorf("Expected volumes 0.25/1, got %v/%v", cfg.Audio.SFXVolume, cfg.Audio.BGMVolume)
	}
	if cfg.Audio.SampleRate != parameter.AudioSampleRate {
		t.Errorf("Malformed sample rate should be ignored, got %d", cfg.Audio.SampleRate)
	}
	if !cfg.Logging.Debug {
		t.Error("Expected debug logging enabled")
	}
	if !cfg.Observer.Enabled || cfg.Observer.BindAddress != "0.0.0.0:9000" {
		t.Errorf("Observer override not applied: %+v", cfg.Observer)
	}
}
