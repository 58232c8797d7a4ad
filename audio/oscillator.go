package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// waveSample evaluates one period position in [0, 1)
func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// expRamp interpolates exponentially from a to b, t in [0, 1]
// Both ends must be positive
func expRamp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a * math.Pow(b/a, t)
}

// sweep is a one-shot oscillator with an exponential pitch glide and an
// exponential gain decay toward silence
type sweep struct {
	wave     WaveType
	rate     beep.SampleRate
	fromHz   float64
	toHz     float64
	peak     float64
	phase    float64
	position int

	sweepSamples int // Pitch reaches toHz here and holds
	decaySamples int // Gain reaches decayFloor here and holds
	totalSamples int // Voice stops here
}

// decayFloor is the gain an exponential decay ends on
const decayFloor = 0.001

// newSweep creates a sweep voice
func newSweep(t Tone, rate beep.SampleRate) *sweep {
	return &sweep{
		wave:         t.Wave,
		rate:         rate,
		fromHz:       t.FromHz,
		toHz:         t.ToHz,
		peak:         t.Peak,
		sweepSamples: max(1, rate.N(t.Sweep)),
		decaySamples: max(1, rate.N(t.Decay)),
		totalSamples: rate.N(t.Stop),
	}
}

// frequency returns the pitch at a sample position
func (s *sweep) frequency(pos int) float64 {
	return expRamp(s.fromHz, s.toHz, float64(pos)/float64(s.sweepSamples))
}

// gain returns the amplitude at a sample position
func (s *sweep) gain(pos int) float64 {
	return expRamp(s.peak, decayFloor, float64(pos)/float64(s.decaySamples))
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.totalSamples {
			return i, i > 0
		}
		val := waveSample(s.wave, s.phase) * s.gain(s.position)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.frequency(s.position) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// newVolume wraps a stream with linear gain
// math.Log2(0) is -Inf, so 0 volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
