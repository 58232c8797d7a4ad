package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Audio Defaults
const (
	DefaultSFXVolume = 0.58
	DefaultBGMVolume = 0.3
)

// Background Music
const (
	// BGMStepDuration is the length of one melody/bass step
	BGMStepDuration = 300 * time.Millisecond

	// BGMGlide is the portamento time constant between steps
	BGMGlide = 20 * time.Millisecond
)

// BGMMelody is the triangle lead line, Hz
var BGMMelody = [8]float64{392.0, 440.0, 523.25, 659.25, 587.33, 523.25, 493.88, 440.0}

// BGMBass is the sine pad line, Hz
var BGMBass = [8]float64{130.81, 146.83, 164.81, 196.0, 174.61, 164.81, 146.83, 130.81}
