package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names, each overriding one config field
const (
	EnvSeed         = "GEMDRIFT_SEED"
	EnvDevice       = "GEMDRIFT_DEVICE"
	EnvLanguage     = "GEMDRIFT_LANGUAGE"
	EnvAudioEnabled = "GEMDRIFT_AUDIO_ENABLED"
	EnvSFXVolume    = "GEMDRIFT_SFX_VOLUME" // 0-100
	EnvBGMVolume    = "GEMDRIFT_BGM_VOLUME" // 0-100
	EnvSampleRate   = "GEMDRIFT_SAMPLE_RATE"
	EnvLogLevel     = "GEMDRIFT_LOG_LEVEL"
	EnvDebug        = "GEMDRIFT_DEBUG"
	EnvObserverAddr = "GEMDRIFT_OBSERVER_ADDR"
	EnvPublishEvery = "GEMDRIFT_OBSERVER_PUBLISH_EVERY"
)

// ApplyEnv overrides fields from the process environment
func (c *Config) ApplyEnv() {
	c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom overrides fields from lookup
// Malformed values are ignored and the previous value is kept
func (c *Config) ApplyEnvFrom(lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return v
	}

	if v := get(EnvSeed); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Game.Seed = seed
		}
	}
	if v := get(EnvDevice); v != "" {
		c.Game.Device = v
	}
	if v := get(EnvLanguage); v != "" {
		c.Game.Language = v
	}

	if v := get(EnvAudioEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = enabled
		}
	}
	// Volumes are given as 0-100 and converted to 0.0-1.0
	if v := get(EnvSFXVolume); v != "" {
		if pct, err := strconv.Atoi(v); err == nil {
			c.Audio.SFXVolume = clampVolume(float64(pct) / 100.0)
		}
	}
	if v := get(EnvBGMVolume); v != "" {
		if pct, err := strconv.Atoi(v); err == nil {
			c.Audio.BGMVolume = clampVolume(float64(pct) / 100.0)
		}
	}
	if v := get(EnvSampleRate); v != "" {
		if rate, err := strconv.Atoi(v); err == nil && rate > 0 {
			c.Audio.SampleRate = rate
		}
	}

	if v := get(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := get(EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Logging.Debug = debug
		}
	}

	if v := get(EnvObserverAddr); v != "" {
		c.Observer.Enabled = true
		c.Observer.BindAddress = v
	}
	if v := get(EnvPublishEvery); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Observer.PublishEvery = d
		}
	}
}
