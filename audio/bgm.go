package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/gem-drift/parameter"
)

// Music voice mix
const (
	leadLevel = 0.08
	padLevel  = 0.05
	padGlide  = 30 * time.Millisecond
)

// Music loops the two-voice background line indefinitely
// Volume is read on the speaker goroutine, so it is stored atomically
type Music struct {
	rate        beep.SampleRate
	stepSamples int
	position    int
	step        int

	leadHz, padHz       float64 // Current gliding pitches
	leadPhase, padPhase float64
	leadCoef, padCoef   float64 // Per-sample glide smoothing

	volume atomic.Int64 // Q16.16 fixed point, 0.0-1.0
}

// NewMusic creates the background loop at rate
func NewMusic(rate beep.SampleRate) *Music {
	m := &Music{
		rate:        rate,
		stepSamples: max(1, rate.N(parameter.BGMStepDuration)),
		leadHz:      parameter.BGMMelody[0],
		padHz:       parameter.BGMBass[0],
		leadCoef:    glideCoef(parameter.BGMGlide, rate),
		padCoef:     glideCoef(padGlide, rate),
	}
	m.volume.Store(1 << 16)
	return m
}

// glideCoef converts a time constant into a one-pole smoothing factor
func glideCoef(tc time.Duration, rate beep.SampleRate) float64 {
	samples := tc.Seconds() * float64(rate)
	if samples <= 0 {
		return 1
	}
	return 1 - math.Exp(-1/samples)
}

// SetVolume sets music volume (0.0-1.0)
func (m *Music) SetVolume(vol float64) {
	if vol < 0 || math.IsNaN(vol) {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	m.volume.Store(int64(vol * (1 << 16)))
}

// Volume returns the current music volume
func (m *Music) Volume() float64 {
	return float64(m.volume.Load()) / (1 << 16)
}

// Step returns the melody index currently sounding
func (m *Music) Step() int {
	return m.step
}

func (m *Music) Stream(samples [][2]float64) (n int, ok bool) {
	vol := m.Volume()
	leadTarget := parameter.BGMMelody[m.step]
	padTarget := parameter.BGMBass[m.step]

	for i := range samples {
		m.leadHz += (leadTarget - m.leadHz) * m.leadCoef
		m.padHz += (padTarget - m.padHz) * m.padCoef

		val := (waveSample(WaveTriangle, m.leadPhase)*leadLevel +
			waveSample(WaveSine, m.padPhase)*padLevel) * vol
		samples[i][0] = val
		samples[i][1] = val

		m.leadPhase += m.leadHz / float64(m.rate)
		m.leadPhase -= math.Floor(m.leadPhase)
		m.padPhase += m.padHz / float64(m.rate)
		m.padPhase -= math.Floor(m.padPhase)

		m.position++
		if m.position >= m.stepSamples {
			m.position = 0
			m.step = (m.step + 1) % len(parameter.BGMMelody)
			leadTarget = parameter.BGMMelody[m.step]
			padTarget = parameter.BGMBass[m.step]
		}
	}
	return len(samples), true
}

func (m *Music) Err() error { return nil }
