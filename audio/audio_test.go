package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/event"
	"github.com/lixenwraith/gem-drift/parameter"
)

const testRate = beep.SampleRate(48000)

// streamLength drains a finite streamer and counts its samples
func streamLength(s beep.Streamer, limit int) int {
	buf := make([][2]float64, 512)
	total := 0
	for total < limit {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	return total
}

// TestEffectLengths verifies each voice stops at its tone length
func TestEffectLengths(t *testing.T) {
	for _, et := range []event.EventType{event.EventHit, event.EventRare, event.EventEquip, event.EventGem} {
		tone, ok := ToneFor(et)
		if !ok {
			t.Fatalf("Expected tone for %s", et)
		}
		fx := NewEffect(et, testRate, 1)
		if fx == nil {
			t.Fatalf("Expected effect for %s", et)
		}
		want := testRate.N(tone.Stop)
		if got := streamLength(fx, want*4); got != want {
			t.Errorf("Expected %s to last %d samples, got %d", et, want, got)
		}
	}

	if got := testRate.N(150 * time.Millisecond); got != 7200 {
		t.Errorf("Expected hit length 7200 samples, got %d", got)
	}
}

// TestSilentEventsHaveNoEffect verifies lifecycle events carry no voice
func TestSilentEventsHaveNoEffect(t *testing.T) {
	for _, et := range []event.EventType{event.EventNone, event.EventPause, event.EventLevelClear, event.EventSettings} {
		if fx := NewEffect(et, testRate, 1); fx != nil {
			t.Errorf("Expected no effect for %s", et)
		}
		if _, ok := ToneFor(et); ok {
			t.Errorf("Expected no tone for %s", et)
		}
	}
}

// TestExpRamp verifies exponential interpolation endpoints and midpoint
func TestExpRamp(t *testing.T) {
	if got := expRamp(220, 120, 0); got != 220 {
		t.Errorf("Expected 220 at start, got %f", got)
	}
	if got := expRamp(220, 120, 1); got != 120 {
		t.Errorf("Expected 120 at end, got %f", got)
	}
	if got := expRamp(220, 120, 2); got != 120 {
		t.Errorf("Expected hold at 120 past end, got %f", got)
	}
	mid := expRamp(100, 400, 0.5)
	if math.Abs(mid-200) > 1e-9 {
		t.Errorf("Expected geometric midpoint 200, got %f", mid)
	}
}

// TestSweepPitchAndGain verifies the glide reaches its target and the gain decays
func TestSweepPitchAndGain(t *testing.T) {
	tone, _ := ToneFor(event.EventRare)
	s := newSweep(tone, testRate)

	if got := s.frequency(0); got != 510 {
		t.Errorf("Expected start pitch 510, got %f", got)
	}
	if got := s.frequency(s.sweepSamples); got != 880 {
		t.Errorf("Expected end pitch 880, got %f", got)
	}
	if got := s.gain(0); got != 0.16 {
		t.Errorf("Expected peak gain 0.16, got %f", got)
	}
	if got := s.gain(s.decaySamples); got != decayFloor {
		t.Errorf("Expected decayed gain %f, got %f", decayFloor, got)
	}
}

// TestEffectPeakBounded verifies no sample exceeds the tone's peak gain
func TestEffectPeakBounded(t *testing.T) {
	tone, _ := ToneFor(event.EventHit)
	fx := NewEffect(event.EventHit, testRate, 1)
	buf := make([][2]float64, 256)
	for {
		n, ok := fx.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > tone.Peak+1e-9 {
				t.Fatalf("Expected |sample| <= %f, got %f", tone.Peak, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
}

// TestWaveSample verifies wave shapes at key phases
func TestWaveSample(t *testing.T) {
	tests := []struct {
		wave  WaveType
		phase float64
		want  float64
	}{
		{WaveSquare, 0.1, 1},
		{WaveSquare, 0.6, -1},
		{WaveTriangle, 0, -1},
		{WaveTriangle, 0.5, 1},
		{WaveSine, 0.25, 1},
	}
	for _, tt := range tests {
		if got := waveSample(tt.wave, tt.phase); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Expected wave %d at %f = %f, got %f", tt.wave, tt.phase, tt.want, got)
		}
	}
}

// TestMusicLoops verifies the step counter advances and wraps
func TestMusicLoops(t *testing.T) {
	m := NewMusic(testRate)
	step := testRate.N(parameter.BGMStepDuration)
	buf := make([][2]float64, step)

	for i := 1; i <= len(parameter.BGMMelody); i++ {
		n, ok := m.Stream(buf)
		if n != step || !ok {
			t.Fatalf("Expected endless stream, got n=%d ok=%v", n, ok)
		}
		want := i % len(parameter.BGMMelody)
		if m.Step() != want {
			t.Errorf("Expected step %d, got %d", want, m.Step())
		}
	}
}

// TestMusicBoundedAndVolume verifies output amplitude and gain handling
func TestMusicBoundedAndVolume(t *testing.T) {
	m := NewMusic(testRate)
	buf := make([][2]float64, 4096)
	m.Stream(buf)
	for _, s := range buf {
		if math.Abs(s[0]) > leadLevel+padLevel+1e-9 {
			t.Fatalf("Expected bounded music sample, got %f", s[0])
		}
	}

	m.SetVolume(0)
	m.Stream(buf)
	for _, s := range buf {
		if s[0] != 0 {
			t.Fatalf("Expected silence at zero volume, got %f", s[0])
		}
	}

	m.SetVolume(2)
	if m.Volume() != 1 {
		t.Errorf("Expected volume clamp to 1, got %f", m.Volume())
	}
	m.SetVolume(math.NaN())
	if m.Volume() != 0 {
		t.Errorf("Expected NaN volume to clamp to 0, got %f", m.Volume())
	}
}

// TestSoundManagerGracefulDegradation verifies calls are safe without a device
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(0, nil)

	settings := engine.DefaultAudioSettings()
	settings.Started = true
	sm.Apply(settings)

	if sm.Play(event.EventGem) {
		t.Error("Expected no playback before activation")
	}
	if sm.MusicPlaying() {
		t.Error("Expected music paused before activation")
	}
	sm.Cleanup()
	sm.Cleanup()
}

// TestSoundManagerGating verifies effects need a started, enabled, audible channel
func TestSoundManagerGating(t *testing.T) {
	sm := NewSoundManager(int(testRate), nil)
	sm.activate()

	settings := engine.DefaultAudioSettings()
	sm.Apply(settings)
	if sm.Play(event.EventGem) {
		t.Error("Expected no effect before audio started")
	}

	settings.Started = true
	sm.Apply(settings)
	if !sm.Play(event.EventGem) {
		t.Error("Expected gem effect once started")
	}
	if sm.Play(event.EventLevelClear) {
		t.Error("Expected no effect for silent event")
	}

	settings.SFXVolume = 0
	sm.Apply(settings)
	if sm.Play(event.EventHit) {
		t.Error("Expected no effect at zero volume")
	}

	settings.SFXVolume = 0.5
	settings.SFXEnabled = false
	sm.Apply(settings)
	if sm.Play(event.EventHit) {
		t.Error("Expected no effect with effects disabled")
	}

	if sm.EffectsPlayed() != 1 {
		t.Errorf("Expected 1 effect played, got %d", sm.EffectsPlayed())
	}
}

// TestSoundManagerHandleEvents verifies batches play only sound cues
func TestSoundManagerHandleEvents(t *testing.T) {
	sm := NewSoundManager(int(testRate), nil)
	sm.activate()
	settings := engine.DefaultAudioSettings()
	settings.Started = true
	sm.Apply(settings)

	batch := []event.GameEvent{
		{Type: event.EventGem},
		{Type: event.EventLevelClear},
		{Type: event.EventEquip},
		{Type: event.EventHit},
		{Type: event.EventPause},
	}
	if got := sm.HandleEvents(batch); got != 3 {
		t.Errorf("Expected 3 effects played, got %d", got)
	}
}

// TestSoundManagerMusicState verifies the loop follows started and enabled flags
func TestSoundManagerMusicState(t *testing.T) {
	sm := NewSoundManager(int(testRate), nil)
	sm.activate()

	settings := engine.DefaultAudioSettings()
	sm.Apply(settings)
	if sm.MusicPlaying() {
		t.Error("Expected music paused before audio started")
	}

	settings.Started = true
	sm.Apply(settings)
	if !sm.MusicPlaying() {
		t.Error("Expected music playing once started")
	}

	settings.BGMEnabled = false
	sm.Apply(settings)
	if sm.MusicPlaying() {
		t.Error("Expected music paused when disabled")
	}

	sm.Cleanup()
	if sm.MusicPlaying() {
		t.Error("Expected music paused after cleanup")
	}
}
