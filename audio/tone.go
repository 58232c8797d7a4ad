package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/gem-drift/event"
)

// Tone describes a one-shot effect voice
type Tone struct {
	Wave   WaveType
	FromHz float64
	ToHz   float64
	Sweep  time.Duration // Pitch glide length
	Peak   float64       // Starting gain before the volume setting
	Decay  time.Duration // Gain decay length
	Stop   time.Duration // Voice length
}

// tones maps sound-carrying events to their voices
var tones = map[event.EventType]Tone{
	event.EventHit: {
		Wave: WaveSquare, FromHz: 220, ToHz: 120,
		Sweep: 140 * time.Millisecond, Peak: 0.2,
		Decay: 140 * time.Millisecond, Stop: 150 * time.Millisecond,
	},
	event.EventRare: {
		Wave: WaveSine, FromHz: 510, ToHz: 880,
		Sweep: 200 * time.Millisecond, Peak: 0.16,
		Decay: 240 * time.Millisecond, Stop: 250 * time.Millisecond,
	},
	event.EventEquip: {
		Wave: WaveTriangle, FromHz: 440, ToHz: 740,
		Sweep: 160 * time.Millisecond, Peak: 0.17,
		Decay: 200 * time.Millisecond, Stop: 210 * time.Millisecond,
	},
	event.EventGem: {
		Wave: WaveTriangle, FromHz: 630, ToHz: 850,
		Sweep: 90 * time.Millisecond, Peak: 0.13,
		Decay: 110 * time.Millisecond, Stop: 120 * time.Millisecond,
	},
}

// ToneFor returns the voice of an event, ok false for silent events
func ToneFor(t event.EventType) (Tone, bool) {
	tone, ok := tones[t]
	return tone, ok
}

// NewEffect builds the finite streamer for an event at the given volume
// Returns nil for events without a sound cue
func NewEffect(t event.EventType, rate beep.SampleRate, volume float64) beep.Streamer {
	tone, ok := tones[t]
	if !ok {
		return nil
	}
	return newVolume(newSweep(tone, rate), volume)
}
